package webfiles

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MacroName = "WEBSERVER_CALLBACK"

	// Preamble opens every generated header.
	Preamble = "#pragma once\n\n"

	// BlockSeparator sits between the macro body and the array declarations.
	BlockSeparator = "\n\n"

	lineContinuation = "\\\n"
)

// MacroOpening starts the macro definition that the handler snippets extend.
func MacroOpening() string {
	return "#define " + MacroName + " "
}

// HandlerSnippet renders the GET route registration for one asset. Every
// line starts with a continuation marker that joins it to the line before,
// so snippets can be appended to MacroOpening back to back.
func HandlerSnippet(a Asset) string {
	var b strings.Builder

	b.WriteString(lineContinuation)
	fmt.Fprintf(&b, "server.on(\"%s\", HTTP_GET, [](AsyncWebServerRequest* request) {", a.Route())
	b.WriteString(lineContinuation)
	fmt.Fprintf(&b, "\treply(request, %d, \"%s\", %s, sizeof(%s));", a.Status, a.MIME, a.Symbol, a.Symbol)
	b.WriteString(lineContinuation)
	b.WriteString("});")

	return b.String()
}

// ArrayDeclaration renders data as a PROGMEM byte array named symbol,
// followed by a blank line.
func ArrayDeclaration(symbol string, data []byte) string {
	var b strings.Builder
	b.Grow(len(symbol) + 40 + len(data)*5)

	b.WriteString("const uint8_t ")
	b.WriteString(symbol)
	b.WriteString("[] PROGMEM = { ")
	for i, c := range data {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(HexByte(c))
	}
	b.WriteString(" };\n\n")

	return b.String()
}

// HexByte renders c as a lower-case hex literal without zero padding.
func HexByte(c byte) string {
	return "0x" + strconv.FormatUint(uint64(c), 16)
}

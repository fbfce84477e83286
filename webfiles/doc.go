// Package webfiles converts a directory of static web assets into a C header
// for an ESP32 AsyncWebServer firmware.
//
// Each regular, non-hidden file in the source directory becomes:
//
//   - a handler snippet inside the WEBSERVER_CALLBACK macro that registers a
//     GET route at "/<filename>" and replies with the embedded bytes
//   - a PROGMEM byte array holding the gzip-compressed file
//
// Naming and classification:
//   - Symbol names are the lower-cased filename with '.' replaced by '_'
//   - MIME types come from a fixed table (js, css, html, svg), defaulting to
//     text/plain; by default the segment after the first dot is used
//   - error404.html is served with status 404, everything else with 200
//
// Output is deterministic: assets keep the filesystem listing order and the
// gzip header carries no timestamp. The header is written to a temporary file
// and renamed into place, so a failed run never leaves a truncated header.
//
// Verify parses a generated header back and checks it against the source
// directory.
package webfiles

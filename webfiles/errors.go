package webfiles

import "errors"

// Sentinel errors for package webfiles.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Source directory, asset and output file access
	ErrFileSystem = errors.New("filesystem error")

	// Asset content is not valid UTF-8
	ErrEncoding = errors.New("asset is not valid UTF-8")

	// Generated header could not be parsed back
	ErrMalformedHeader = errors.New("malformed generated header")
)

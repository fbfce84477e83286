// Package main provides the webfilegen command-line interface.
//
// webfilegen embeds a directory of static web files into a C header for
// ESP32 firmware serving them with AsyncWebServer. Each file is gzip-compressed
// into a PROGMEM byte array and registered as a GET route through the
// WEBSERVER_CALLBACK macro.
//
// The binary supports the following subcommands:
//   - generate: Build the header from the source directory (default web/ -> src/webfiles.h)
//   - verify: Check that an existing header matches the source directory
package main

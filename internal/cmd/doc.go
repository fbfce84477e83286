// Package cmd provides the command-line interface implementation for webfilegen.
//
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - generate: Build the web files header from a source directory
//   - verify: Check a generated header against its source directory
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. Configuration flags shared by the commands live
// in options.go; the work itself is done by the webfiles package.
package cmd

// Package version reports the webfilegen build version.
//
// Values injected at link time take precedence; otherwise the module version
// and VCS settings recorded by the Go toolchain are used:
//
//	go build -ldflags "-X github.com/dendrascience/webfilegen/version.Version=v1.0.0 \
//	  -X github.com/dendrascience/webfilegen/version.Commit=abc1234 \
//	  -X github.com/dendrascience/webfilegen/version.Date=2024-01-01T00:00:00Z"
package version

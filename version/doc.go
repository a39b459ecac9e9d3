// Package version exposes build metadata for the voxtask binary.
//
// Values are injected with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/voxtask/version.Version=1.2.3 \
//	  -X github.com/ncobase/voxtask/version.Revision=abc123 \
//	  -X 'github.com/ncobase/voxtask/version.BuiltAt=$(date)'" ./cmd/voxtask
//
// When they are absent the VCS stamp embedded by the Go toolchain is used.
package version

// Package buildinfo exposes build information for respkv binaries.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/respkv/internal/infra/buildinfo.Version=v1.0.0"
//
// When they are not set, Commit and BuildTime fall back to the VCS stamp
// the Go toolchain embeds, and GoVersion always reports the runtime.
package buildinfo

package config

// Version is injected at build time via ldflags.
//
// Build with:
//   go build -ldflags "-X 'github.com/xdccfind/xdccfind/internal/config.Version=v1.2.3'" ./cmd/xdccfind
var Version = "dev"

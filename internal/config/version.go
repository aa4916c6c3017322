package config

// Version is the routeviz binary version.
// Set at build time via: -ldflags "-X github.com/routeviz/routeviz/internal/config.Version=<tag>"
var Version = "dev"

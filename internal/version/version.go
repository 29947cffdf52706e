package version

// Value is overridden at build time with -ldflags "-X clipdeck/internal/version.Value=...".
var Value = "dev"

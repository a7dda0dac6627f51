// Package version reports the build of the capture daemon
package version

// BuildInfo holds version information about the daemon build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information.
// Set via -ldflags "-X 'cobrify/internal/core/version.version=v0.1.0'
// -X 'cobrify/internal/core/version.commit=abcd' -X 'cobrify/internal/core/version.date=2026-10-16'"
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

const service = "cobrify-capture"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

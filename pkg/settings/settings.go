// Package settings holds build metadata and the per-run settings shared by
// the colresize command and its packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "colresize"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds the commit hash, version and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds settings for a single execution.
type Run struct {
	MinLogLevel int8
	// LogFile receives log records instead of stderr when set.
	LogFile  string
	NoColor  bool
	Snapshot bool
	// Interactive is false when the table is printed once and the process exits.
	Interactive bool
}

// NewCliParams returns the settings of an interactive CLI run.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Interactive: true,
	}
}

// LogToStderr reports whether log records may go to stderr without
// corrupting the terminal UI.
func (r *Run) LogToStderr() bool {
	return r.LogFile == "" && !r.Interactive
}

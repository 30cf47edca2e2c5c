package common

// Set via -ldflags "-X jira-ticket-viewer/internal/common.Version=..."
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

func GetVersion() string {
	return Version
}

func GetBuild() string {
	return Build
}

// GetFullVersion returns version, build and commit in one line for --version
func GetFullVersion() string {
	full := Version
	if Build != "unknown" {
		full += "-" + Build
	}
	if GitCommit != "unknown" {
		full += " (" + GitCommit + ")"
	}
	return full
}

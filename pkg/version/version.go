// Package version contains version information for skycast.
package version

var (
	// Version is the current version of skycast.
	Version = "dev"
	// BuildTime is the time when the binary was built.
	BuildTime = "unknown"
	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"
)

// UserAgent returns the User-Agent sent with outgoing API requests.
func UserAgent() string {
	return "skycast/" + Version
}

// String returns a one-line description of the build.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}

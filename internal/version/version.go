// Package version provides version information for the themer CLI.
package version

// Version and Commit are set via ldflags during build.
var (
	Version = "dev"
	Commit  = ""
)

// GetVersion returns the current version string, with the commit when known.
func GetVersion() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + shortCommit(Commit) + ")"
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}

// ABOUTME: Version command reporting build metadata
// ABOUTME: Falls back to embedded module build info when ldflags are unset
package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// VersionInfo contains build information
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

var versionInfo = VersionInfo{Version: "dev", Commit: "none", Date: "unknown"}

// SetVersion records build metadata injected at link time (called from main)
func SetVersion(version, commit, date string) {
	versionInfo = VersionInfo{Version: version, Commit: commit, Date: date}
}

// String renders one line per field, the format the version command prints.
func (v VersionInfo) String() string {
	return fmt.Sprintf("askdocs %s\nCommit: %s\nBuilt:  %s\n", v.Version, v.Commit, v.Date)
}

// resolve fills unset fields from the module build info, so plain
// `go install` builds still report their revision.
func (v VersionInfo) resolve() VersionInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if v.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v.Version = info.Main.Version
	}
	if v.Commit == "none" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				v.Commit = s.Value
			}
		}
	}
	return v
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date for the askdocs CLI.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionInfo.resolve().String())
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ailearn", displayVersion())
	},
}

// displayVersion returns the canonical semver form of the build version,
// e.g. "v1.2" becomes "v1.2.0". Non-release builds print as set.
func displayVersion() string {
	v := version
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	if semver.IsValid(v) {
		return semver.Canonical(v)
	}
	return version
}

package cmd

import (
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("marquee %s\n", version)
		fmt.Printf("Build time: %s\n", buildTime)
		fmt.Printf("Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if _, err := parseVersion(version); err != nil {
			fmt.Println("Development build, self-update disabled")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// parseVersion parses a release version such as "v1.2.3" or "1.2.3"
func parseVersion(v string) (semver.Version, error) {
	return semver.ParseTolerant(v)
}

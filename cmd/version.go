package cmd

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const develVersion = "devel"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version, VCS revision and Go version used to build depmap.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				cmd.Println("depmap version: unknown")
				return
			}

			cmd.Printf("depmap %s (%s %s/%s)\n", buildVersion(info), info.GoVersion, runtime.GOOS, runtime.GOARCH)
		},
	}
}

// buildVersion prefers the module version and falls back to the VCS revision.
func buildVersion(info *debug.BuildInfo) string {
	version := info.Main.Version
	if version != "" && version != "(devel)" {
		return version
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 12 {
			return develVersion + "-" + setting.Value[:12]
		}
	}

	return develVersion
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}

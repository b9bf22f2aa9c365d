package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depmap.dev/pkg/depmap/internal/domain"
	m "depmap.dev/pkg/depmap/internal/model"
)

var resolveRelativeFlag bool
var resolveStrictFlag bool

// resolveCmd represents the resolve command.
var resolveCmd = newResolveCmd()

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve MAIN_FILE REFERENCE",
		Short: "Resolve a single dependency reference",
		Long: `Resolve REFERENCE, as recorded while compiling MAIN_FILE, to an existing file.

The reference is tried as given, then next to MAIN_FILE (for include files or
with --relative), then through a directory shared with MAIN_FILE, then under
each --search-path in order. An unresolved reference prints its canonical path
and exits successfully unless --strict is set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Resolve(commandContext(cmd), domain.ResolveArgs{
				Reference: m.DependencyReference{
					MainFile:     m.Path(args[0]),
					Reference:    m.Path(args[1]),
					RelativeHint: resolveRelativeFlag,
				},
				SearchPaths:       parsePaths(viper.GetStringSlice(searchPathsConfigKey)),
				IncludeExtensions: viper.GetStringSlice(includeExtsConfigKey),
				Strict:            resolveStrictFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&resolveRelativeFlag, relativeHintFlagName, false, "also look for the reference relative to the main file")
	cmd.Flags().BoolVar(&resolveStrictFlag, strictFlagName, false, "fail when the reference cannot be resolved")

	return cmd
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

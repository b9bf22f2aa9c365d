// Package cmd provides the root command and CLI setup for depmap.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"depmap.dev/pkg/depmap/internal/adapter"
	"depmap.dev/pkg/depmap/internal/controller"
	"depmap.dev/pkg/depmap/internal/domain"
	m "depmap.dev/pkg/depmap/internal/model"
)

var sourceFSAdapter adapter.SourceFSAdapter
var generatedAdapter adapter.GeneratedSourceAdapter
var reportStore adapter.ReportStore
var fileOracle adapter.FileOracle
var workflow domain.Workflow
var ui controller.UI

// reportPathFlag is a root-level flag shared by commands that read/write reports.
var reportPathFlag string

// searchPathsFlag lists the fallback roots scanned by the resolver.
var searchPathsFlag []string

// includeExtensionsFlag lists reference suffixes always searched next to the main file.
var includeExtensionsFlag []string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var logFileFlag string
var verboseFlag bool

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	generatedAdapter = adapter.NewLocalGeneratedSourceAdapter()
	reportStore = adapter.NewLocalReportStore()
	fileOracle = adapter.NewLocalFileOracle()
	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		generatedAdapter,
		reportStore,
		fileOracle,
		ui,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./build/...    recursively scan build directory
  - ./build ./ext  scan multiple directories (non-recursive)`

const rootLongDescription = `depmap maps the source references recorded in generated C/C++ files
(e.g. Cython "/* "file.pyx":12" markers) back to files that exist on disk,
so coverage reports can point at real sources even when the build ran in
another directory.

` + pathPatternsHelp

const scanLongDescription = `Scan generated sources under the given paths (default: current directory)
and resolve every dependency reference they record.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "depmap",
		Short: "Resolve dependency references of generated sources",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportPathFlag, outputFlagName, "o",
			defaultReportPath,
			"path of the dependency report file",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&searchPathsFlag, searchPathFlagName, "I", nil, "fallback search root, in priority order (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(searchPathFlagName), searchPathsConfigKey)

	cmd.PersistentFlags().StringArrayVar(&includeExtensionsFlag, includeExtFlagName, domain.DefaultIncludeExtensions, "reference suffix always searched next to the main file (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(includeExtFlagName), includeExtsConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", nil, "exclude files matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

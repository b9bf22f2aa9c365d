package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depmap.dev/pkg/depmap/internal/adapter"
	"depmap.dev/pkg/depmap/internal/domain"
	m "depmap.dev/pkg/depmap/internal/model"
)

var scanParallelFlag int
var scanPatternsFlag []string
var scanCacheSizeFlag int
var scanStrictFlag bool

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Resolve every dependency reference of generated sources",
		Long:  scanLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Scan(commandContext(cmd), domain.ScanArgs{
				Paths:             parsePaths(args),
				Include:           viper.GetStringSlice(includeConfigKey),
				Exclude:           viper.GetStringSlice(excludeConfigKey),
				SearchPaths:       parsePaths(viper.GetStringSlice(searchPathsConfigKey)),
				IncludeExtensions: viper.GetStringSlice(includeExtsConfigKey),
				Threads:           viper.GetInt(runParallelConfigKey),
				CacheSize:         viper.GetInt(runCacheSizeConfigKey),
				Report:            m.Path(viper.GetString(outputFlagName)),
				Strict:            scanStrictFlag,
			})
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&scanParallelFlag, parallelFlagName, "p", defaultRunParallel, "number of parallel workers (0 uses every CPU)")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), runParallelConfigKey)

	cmd.Flags().StringArrayVar(&scanPatternsFlag, patternFlagName, adapter.DefaultSourcePatterns, "file name glob selecting generated sources (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(patternFlagName), includeConfigKey)

	cmd.Flags().IntVar(&scanCacheSizeFlag, cacheSizeFlagName, defaultRunCacheSize, "entries in the existence cache (0 disables it)")
	bindFlagToConfig(cmd.Flags().Lookup(cacheSizeFlagName), runCacheSizeConfigKey)

	cmd.Flags().BoolVar(&scanStrictFlag, strictFlagName, false, "fail when any reference cannot be resolved")
}

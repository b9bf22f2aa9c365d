package cmd

import (
	"github.com/spf13/cobra"

	"depmap.dev/pkg/depmap/internal/domain"
	m "depmap.dev/pkg/depmap/internal/model"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff BASE HEAD",
		Short: "Compare the resolutions of two dependency reports",
		Long:  "Print a unified diff of the resolutions recorded in two report files.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Diff(commandContext(cmd), domain.DiffArgs{
				Base: m.Path(args[0]),
				Head: m.Path(args[1]),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

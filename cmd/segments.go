package cmd

import (
	"github.com/spf13/cobra"

	"depmap.dev/pkg/depmap/internal/domain"
	m "depmap.dev/pkg/depmap/internal/model"
)

// segmentsCmd represents the segments command.
var segmentsCmd = newSegmentsCmd()

func newSegmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "segments PATH",
		Short: "Print the directory hierarchy of a path, leaf first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Segments(commandContext(cmd), domain.SegmentsArgs{Path: m.Path(args[0])})
		},
	}
}

func init() {
	rootCmd.AddCommand(segmentsCmd)
}

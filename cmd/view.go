package cmd

import (
	"github.com/spf13/cobra"

	"phototools.dev/pkg/phototools/internal/domain"
)

var viewDiffFlag bool

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the last run report",
		Long: `View the report saved by the last run. With --diff the saved plan is
compared with a fresh plan of the same directory.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				Reports: reportsDir(),
				Diff:    viewDiffFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&viewDiffFlag, diffFlagName, false, "compare the saved plan with the current directory")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

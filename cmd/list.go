package cmd

import (
	"github.com/spf13/cobra"

	"phototools.dev/pkg/phototools/internal/domain"
	m "phototools.dev/pkg/phototools/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list IMG|RAW",
		Short:     "List orphan photos without changing anything",
		Long:      listLongDescription,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), validModeArg),
		ValidArgs: []string{string(m.ModeIMG), string(m.ModeRAW)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := extensionConfigFromArgs(args[0])
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{
				Dir:    photoDir(),
				Config: cfg,
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"phototools.dev/pkg/phototools/internal/domain"
)

// restoreCmd represents the restore command.
var restoreCmd = newRestoreCmd()

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Move previously discarded photos back",
		Long: `Move the photos recorded by earlier runs out of the holding subdirectory
and back into the photo directory. Deleted photos cannot be restored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Restore(cmd.Context(), domain.RestoreArgs{
				Dir:        photoDir(),
				DestSubdir: viper.GetString(destKey),
				Threads:    viper.GetInt(parallelKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

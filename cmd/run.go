package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"phototools.dev/pkg/phototools/internal/domain"
	m "phototools.dev/pkg/phototools/internal/model"
)

var runDeleteFlag bool
var runDryRunFlag bool
var runYesFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "run IMG|RAW",
		Short:     "Find orphan photos and move or delete them",
		Long:      runLongDescription,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), validModeArg),
		ValidArgs: []string{string(m.ModeIMG), string(m.ModeRAW)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := extensionConfigFromArgs(args[0])
			if err != nil {
				return err
			}

			mode := domain.MoveTo(viper.GetString(destKey))
			if viper.GetBool(deleteKey) {
				mode = domain.DeleteMode()
			}

			return workflow.Run(cmd.Context(), domain.RunArgs{
				ListArgs: domain.ListArgs{
					Dir:    photoDir(),
					Config: cfg,
				},
				Mode:      mode,
				DryRun:    runDryRunFlag,
				AssumeYes: runYesFlag,
				Reports:   reportsDir(),
				Threads:   viper.GetInt(parallelKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&runDeleteFlag, deleteFlagName, "d", viper.GetBool(deleteKey), "delete orphans instead of moving them")
	bindFlagToConfig(cmd.Flags().Lookup(deleteFlagName), deleteKey)
	cmd.Flags().BoolVarP(&runDryRunFlag, dryRunFlagName, "n", false, "plan the actions without touching any file")
	cmd.Flags().BoolVarP(&runYesFlag, yesFlagName, "y", false, "delete without asking for confirmation")
}

// validModeArg rejects anything but IMG or RAW before the command runs.
func validModeArg(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	_, err := m.ParseMode(args[0])

	return err
}

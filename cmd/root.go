// Package cmd provides the root command and CLI setup for phototools.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"phototools.dev/pkg/phototools/internal/adapter"
	"phototools.dev/pkg/phototools/internal/controller"
	"phototools.dev/pkg/phototools/internal/domain"
	m "phototools.dev/pkg/phototools/internal/model"
)

var fsAdapter adapter.PhotoFSAdapter
var executor adapter.ActionExecutor
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

var (
	verboseFlag  bool
	logFileFlag  string
	pathFlag     string
	rawExtFlag   string
	imgExtFlag   string
	foldCaseFlag bool
	destFlag     string
	parallelFlag int
)

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalPhotoFSAdapter()
	executor = adapter.NewActionExecutor(fsAdapter)
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(fsAdapter, executor, reportStore, ui)
}

const modeHelp = `MODE selects which side of a pair is checked:
  IMG   report developed images (e.g. JPG) that have no raw file
  RAW   report raw files (e.g. RAF) that have no developed image`

const rootLongDescription = `Phototools finds orphan photo files: developed images whose raw capture was
deleted, or raw captures whose developed image was deleted. Files are paired
by name within a single directory, so IMG_0001.JPG pairs with IMG_0001.RAF.

Orphans are moved into a holding subdirectory (default "to_delete") so they
can be reviewed and restored, or deleted outright with --delete.`

const runLongDescription = `Find orphan photo files in a directory and dispose of them.

` + modeHelp

const listLongDescription = `List orphan photo files without changing anything.

` + modeHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phototools",
		Short: "Find and clean up orphan raw and developed photos",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a fresh root command for tests.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(
		&reportsOutputDirFlag, outputFlagName, "o",
		viper.GetString(outputFlagName),
		"output directory for run reports",
	)
	bindFlagToConfig(flags.Lookup(outputFlagName), outputFlagName)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.StringVarP(&pathFlag, pathFlagName, "p", viper.GetString(pathKey), "photo directory (empty means the current directory)")
	bindFlagToConfig(flags.Lookup(pathFlagName), pathKey)

	flags.StringVarP(&rawExtFlag, rawExtFlagName, "r", viper.GetString(rawExtKey), "raw file extension")
	bindFlagToConfig(flags.Lookup(rawExtFlagName), rawExtKey)

	flags.StringVarP(&imgExtFlag, imgExtFlagName, "j", viper.GetString(imgExtKey), "developed image extension")
	bindFlagToConfig(flags.Lookup(imgExtFlagName), imgExtKey)

	flags.BoolVar(&foldCaseFlag, foldCaseFlagName, viper.GetBool(foldCaseKey), "pair base names case-insensitively")
	bindFlagToConfig(flags.Lookup(foldCaseFlagName), foldCaseKey)

	flags.StringVar(&destFlag, destFlagName, viper.GetString(destKey), "holding subdirectory for moved orphans")
	bindFlagToConfig(flags.Lookup(destFlagName), destKey)

	flags.IntVar(&parallelFlag, parallelFlagName, viper.GetInt(parallelKey), "number of parallel workers for file actions")
	bindFlagToConfig(flags.Lookup(parallelFlagName), parallelKey)
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

func photoDir() m.Path {
	return m.Path(viper.GetString(pathKey))
}

func reportsDir() m.Path {
	return m.Path(viper.GetString(outputFlagName))
}

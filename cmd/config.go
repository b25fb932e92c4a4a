package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"phototools.dev/pkg/phototools/internal/domain"
	m "phototools.dev/pkg/phototools/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "phototools"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."
	envFileName      = ".env"

	outputFlagName   = "output"
	verboseFlagName  = "verbose"
	logFileFlagName  = "log-file"
	pathFlagName     = "path"
	rawExtFlagName   = "raw-ext"
	imgExtFlagName   = "img-ext"
	foldCaseFlagName = "fold-case"
	destFlagName     = "dest"
	parallelFlagName = "parallel"
	deleteFlagName   = "delete"
	dryRunFlagName   = "dry-run"
	yesFlagName      = "yes"
	diffFlagName     = "diff"

	pathKey     = "path"
	rawExtKey   = "extensions.raw"
	imgExtKey   = "extensions.img"
	foldCaseKey = "pairing.fold_case"
	destKey     = "disposition.dest"
	deleteKey   = "disposition.delete"
	parallelKey = "run.parallel"

	defaultReportsDir = ".phototools-reports"
	defaultPath       = "."
	defaultFoldCase   = false
	defaultDelete     = false
	defaultParallel   = 1

	envPrefix = "PHOTOTOOLS"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".phototools.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	// A .env file only seeds variables that are not already set.
	if err := godotenv.Load(envFileName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load env file", "path", envFileName, "error", err)
	}

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(pathKey, defaultPath)
	viper.SetDefault(rawExtKey, m.DefaultRawExt)
	viper.SetDefault(imgExtKey, m.DefaultDevelopedExt)
	viper.SetDefault(foldCaseKey, defaultFoldCase)
	viper.SetDefault(destKey, domain.DefaultDestSubdir)
	viper.SetDefault(deleteKey, defaultDelete)
	viper.SetDefault(parallelKey, defaultParallel)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return
		}

		slog.Warn("failed to read config file", "path", configFileName, "error", err)
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// extensionConfigFromArgs builds the pairing configuration from the mode
// argument and the configured extensions.
func extensionConfigFromArgs(modeArg string) (m.ExtensionConfig, error) {
	mode, err := m.ParseMode(modeArg)
	if err != nil {
		return m.ExtensionConfig{}, err
	}

	return m.NewExtensionConfig(
		viper.GetString(rawExtKey),
		viper.GetString(imgExtKey),
		mode.Subject(),
		m.WithFoldBaseCase(viper.GetBool(foldCaseKey)),
	)
}

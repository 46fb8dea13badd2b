package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"pbtscan.dev/pkg/pbtscan/internal/adapter"
	"pbtscan.dev/pkg/pbtscan/internal/domain"
	"pbtscan.dev/pkg/pbtscan/internal/render"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "pbtscan"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName   = "output"
	cacheFlagName    = "cache"
	excludeFlagName  = "exclude"
	includeFlagName  = "include"
	markerFlagName   = "marker"
	engineFlagName   = "engine"
	parallelFlagName = "parallel"
	verboseFlagName  = "verbose"

	fileTimeoutFlagName = "file-timeout"
	styleFlagName       = "style"
	inputFlagName       = "input"
	resultsFlagName     = "results"
	workersFlagName     = "workers"
	timeoutFlagName     = "timeout"
	minTestsFlagName    = "min-tests"
	tokenFlagName       = "token"
	rpsFlagName         = "rps"
	markdownFlagName    = "markdown"

	excludeConfigKey     = "paths.exclude"
	includeConfigKey     = "paths.include"
	gitignoreConfigKey   = "paths.respect_gitignore"
	markerConfigKey      = "extract.marker"
	engineConfigKey      = "extract.engine"
	matchTimeoutKey      = "extract.match_timeout"
	parallelConfigKey    = "collect.parallel"
	fileTimeoutKey       = "collect.file_timeout"
	typesetterConfigKey  = "collect.typesetter"
	styleConfigKey       = "collect.style"
	catalogInputKey      = "catalog.input"
	catalogResultsKey    = "catalog.results"
	catalogWorkersKey    = "catalog.workers"
	catalogTimeoutKey    = "catalog.timeout"
	catalogMinTestsKey   = "catalog.min_tests"
	tableOutputKey       = "table.output"
	githubTokenKey       = "github.token"
	githubRPSKey         = "github.rps"
	defaultOutputDir     = "collected_pbts"
	defaultCacheDir      = "repo_cache"
	defaultParallel      = 0
	defaultRespectIgnore = true
	defaultCatalogInput  = "dependents_hypothesis.json"
	defaultResultsFile   = "filtered_repos.json"
	defaultTableOutput   = "hypothesis_repos.md"
	defaultGitHubRPS     = 1.0

	envPrefix = "PBTSCAN"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".pbtscan.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	setupConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Debug("Failed to read config file", "error", err)
		}
	}
}

// setupConfig registers the config file location, env lookup and defaults.
func setupConfig() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultOutputDir)
	viper.SetDefault(cacheFlagName, defaultCacheDir)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(includeConfigKey, []string{domain.DefaultIncludePattern})
	viper.SetDefault(gitignoreConfigKey, defaultRespectIgnore)

	viper.SetDefault(markerConfigKey, domain.DefaultMarker)
	viper.SetDefault(engineConfigKey, domain.EngineRegex)
	viper.SetDefault(matchTimeoutKey, domain.DefaultMatchTimeout.String())

	viper.SetDefault(parallelConfigKey, defaultParallel)
	viper.SetDefault(fileTimeoutKey, domain.DefaultFileTimeout.String())
	viper.SetDefault(typesetterConfigKey, adapter.DefaultTypesetter)
	viper.SetDefault(styleConfigKey, render.DefaultStyle)

	viper.SetDefault(catalogInputKey, defaultCatalogInput)
	viper.SetDefault(catalogResultsKey, defaultResultsFile)
	viper.SetDefault(catalogWorkersKey, domain.DefaultCatalogWorkers)
	viper.SetDefault(catalogTimeoutKey, domain.DefaultCatalogTimeout.String())
	viper.SetDefault(catalogMinTestsKey, domain.DefaultMinTests)
	viper.SetDefault(tableOutputKey, defaultTableOutput)

	viper.SetDefault(githubTokenKey, "")
	viper.SetDefault(githubRPSKey, defaultGitHubRPS)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	// GITHUB_TOKEN is honoured as well as PBTSCAN_GITHUB_TOKEN.
	_ = viper.BindEnv(githubTokenKey, envPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")
}

// configDuration reads a duration key, accepting "30s"-style strings or
// plain integers as seconds.
func configDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return fallback
	}

	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("Invalid duration in configuration", "key", key, "value", raw)
		return fallback
	}

	return d
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

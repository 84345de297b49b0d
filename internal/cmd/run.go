package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/harrison/wlmerge/internal/config"
	"github.com/harrison/wlmerge/internal/display"
	"github.com/harrison/wlmerge/internal/filelock"
	"github.com/harrison/wlmerge/internal/fileutil"
	"github.com/harrison/wlmerge/internal/logger"
	"github.com/harrison/wlmerge/internal/weave"
	"github.com/spf13/cobra"
)

// ErrNoInputFiles is returned when the patterns resolve to no usable input.
var ErrNoInputFiles = errors.New("no valid input files found")

// runMerge implements the root command: resolve, filter, merge, commit.
func runMerge(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cfg.MergeWithFlags(flagOverrides(cmd))

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	excluder, err := fileutil.NewExcluder(cfg.Exclude)
	if err != nil {
		return err
	}

	runID := uuid.NewString()

	consoleLog := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	defer consoleLog.Flush()

	multiLog := &multiLogger{loggers: []runLogger{consoleLog}}

	var fileLog *logger.FileLogger
	if cfg.LogDir != "" {
		fileLog, err = logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, runID)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()
		defer func() {
			if err != nil {
				fileLog.LogError(err.Error())
			}
		}()
		multiLog.loggers = append(multiLog.loggers, fileLog)
	}
	multiLog.LogDebug(fmt.Sprintf("Run ID: %s", runID))

	files, dropped := resolveInputs(args, excluder, cfg.Output, multiLog)
	for _, warning := range dropped {
		if cfg.LogLevel != "error" {
			warning.Display(cmd.ErrOrStderr())
		}
		if fileLog != nil {
			for _, f := range warning.Files {
				fileLog.LogWarn(fmt.Sprintf("%s: %s", warning.Title, f))
			}
		}
	}
	if len(files) == 0 {
		return ErrNoInputFiles
	}
	multiLog.LogInfo(fmt.Sprintf("Found %d files to merge", len(files)))

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		display.ListFiles(cmd.OutOrStdout(), files, cfg.Output)
		return nil
	}

	limit, haveLimit := display.OpenFileLimit()
	if warning, warn := display.CheckInputCount(len(files), cfg.FDWarnThreshold, limit, haveLimit); warn {
		if cfg.LogLevel != "error" {
			warning.Display(cmd.ErrOrStderr())
		}
		if fileLog != nil {
			fileLog.LogWarn(warning.Message)
		}
	}

	out, err := filelock.CreateOutput(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Abort()

	merger := weave.NewMerger(mergeOptions(cfg), multiLog)
	result, err := merger.Merge(files, out)
	if err != nil {
		return err
	}

	if err := out.Commit(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	multiLog.LogInfo(fmt.Sprintf("Output written to: %s", cfg.Output))
	multiLog.LogSummary(result)

	return nil
}

// loadConfig reads --config when given, otherwise the default config location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	defaultPath, err := config.DefaultConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config: %w", err)
	}
	cfg, err := config.LoadConfig(defaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// flagOverrides collects the flags set on the command line.
func flagOverrides(cmd *cobra.Command) config.FlagOverrides {
	var overrides config.FlagOverrides
	flags := cmd.Flags()

	if flags.Changed("output") {
		output, _ := flags.GetString("output")
		overrides.Output = &output
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		overrides.LogLevel = &level
	}
	if flags.Changed("log-dir") {
		logDir, _ := flags.GetString("log-dir")
		overrides.LogDir = &logDir
	}
	if flags.Changed("exact") {
		exact, _ := flags.GetBool("exact")
		overrides.Exact = &exact
	}
	if flags.Changed("reserve") {
		reserve, _ := flags.GetInt("reserve")
		overrides.ReserveLines = &reserve
	}
	overrides.Exclude, _ = flags.GetStringArray("exclude")

	return overrides
}

// resolveInputs expands patterns and drops excluded files and the output itself.
// Pattern warnings are logged; dropped files come back as one warning per reason.
func resolveInputs(patterns []string, excluder *fileutil.Excluder, output string, log runLogger) ([]string, []display.Warning) {
	expanded := fileutil.ExpandPatterns(patterns, fileutil.ExpandOptions{})
	for _, w := range expanded.Warnings {
		log.LogWarn(w.Error())
	}

	var dropped []display.Warning

	files, excluded := excluder.Filter(expanded.Files)
	if len(excluded) > 0 {
		dropped = append(dropped, display.WarnExcludedFiles("Excluded by pattern", excluded))
	}

	files, removed := fileutil.WithoutPath(files, output)
	if len(removed) > 0 {
		dropped = append(dropped, display.WarnExcludedFiles("Output file skipped as input", removed))
	}

	return files, dropped
}

func mergeOptions(cfg *config.Config) weave.Options {
	return weave.Options{
		Exact:            cfg.Exact,
		ReserveLines:     cfg.ReserveLines,
		ProgressInterval: cfg.ProgressInterval,
		ReadBufferSize:   cfg.ReadBufferKB * 1024,
		WriteBufferSize:  cfg.WriteBufferKB * 1024,
	}
}

// runLogger is the logging surface shared by the console and file loggers.
type runLogger interface {
	weave.Logger
	LogDebug(message string)
	LogSummary(result *weave.Result)
}

// multiLogger implements runLogger by delegating to multiple loggers
type multiLogger struct {
	loggers []runLogger
}

// LogDebug forwards to all loggers
func (ml *multiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

// LogInfo forwards to all loggers
func (ml *multiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

// LogWarn forwards to all loggers
func (ml *multiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

// LogProgress forwards to all loggers
func (ml *multiLogger) LogProgress(p weave.Progress) {
	for _, l := range ml.loggers {
		l.LogProgress(p)
	}
}

// LogSummary forwards to all loggers
func (ml *multiLogger) LogSummary(result *weave.Result) {
	for _, l := range ml.loggers {
		l.LogSummary(result)
	}
}

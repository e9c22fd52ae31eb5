package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robottwo/hintline/internal/analytics"
	"github.com/robottwo/hintline/internal/config"
	"github.com/robottwo/hintline/internal/core"
	"github.com/robottwo/hintline/pkg/hintline"
	"github.com/robottwo/hintline/pkg/terminal"
	"go.uber.org/zap"
)

var BUILD_VERSION = "dev"

// analytics_file value that turns recording off.
const analyticsDisabled = "-"

var configFile = flag.String("config", "", "use a custom config file instead of ~/.config/hintline/config.yaml")
var hintsFile = flag.String("hints", "", "read hints from this file, one per line")
var promptFlag = flag.String("prompt", "", "prompt shown before the input")
var patternFlag = flag.String("pattern", "", "regular expression every typed character must match")
var colorFlag = flag.String("color", "", "color of the suggestion hint (ANSI index or #rrggbb)")
var singleRowFlag = flag.Bool("single-row", false, "never wrap the input onto following rows")
var statsFlag = flag.Bool("stats", false, "print suggestion acceptance statistics and exit")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Println("Usage of hintline:")
		flag.PrintDefaults()
		return
	}

	paths, err := core.DefaultPaths()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := loadConfig(paths)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(cfg, paths)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync() // Flush any buffered log entries
	}()

	logger.Info("-------- new hintline session --------", zap.Any("args", os.Args))

	if *statsFlag {
		err = printStats(cfg, paths)
	} else {
		err = run(cfg, paths, logger)
	}

	if err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, paths *core.Paths, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	corpus, err := cfg.Corpus()
	if err != nil {
		return err
	}
	logger.Debug("hints loaded", zap.Int("count", len(corpus)))

	analyticsManager, err := initializeAnalyticsManager(cfg, paths, logger)
	if err != nil {
		// analytics are optional, continue without them
		logger.Warn("failed to initialize analytics manager", zap.Error(err))
	}
	if analyticsManager != nil {
		defer analyticsManager.Close()
	}

	termOptions := terminal.NewOptions()
	termOptions.Prompt = cfg.Prompt
	termOptions.PromptColor = hintline.Color(cfg.PromptColor)
	termOptions.Logger = logger

	term, err := terminal.Open(termOptions)
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer term.Close()

	go func() {
		<-ctx.Done()
		_ = term.Close()
	}()

	editor := hintline.New(corpus, term, editorOptions(cfg, analyticsManager, logger))
	return core.RunInteractiveSession(
		ctx,
		core.DefaultUserPrompter{Editor: editor},
		func(_ context.Context, line string) error {
			logger.Info("line committed", zap.String("line", line))
			return nil
		},
		core.SessionOptions{
			ValidationPattern: cfg.ValidationPattern,
			HintColor:         hintline.Color(cfg.HintColor),
		},
		logger,
	)
}

func editorOptions(cfg config.Config, analyticsManager *analytics.AnalyticsManager, logger *zap.Logger) hintline.Options {
	options := hintline.NewOptions()
	options.ValidationPattern = cfg.ValidationPattern
	options.HintColor = hintline.Color(cfg.HintColor)
	options.Logger = logger
	if cfg.SingleRow {
		options.NewCursorModel = hintline.NewSingleRowModel
	}
	// a nil *AnalyticsManager must not end up in the interface
	if analyticsManager != nil {
		options.Analytics = analyticsManager
	}
	return options
}

// loadConfig reads the config file and applies the command line flags on top.
func loadConfig(paths *core.Paths) (config.Config, error) {
	path, optional := paths.ConfigFile, true
	if *configFile != "" {
		path, optional = *configFile, false
	}

	cfg, err := config.Load(path, optional)
	if err != nil {
		return config.Config{}, err
	}

	visited := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})
	return applyFlags(cfg, visited), nil
}

func applyFlags(cfg config.Config, visited map[string]bool) config.Config {
	if visited["prompt"] {
		cfg.Prompt = *promptFlag
	}
	if visited["pattern"] {
		cfg.ValidationPattern = *patternFlag
	}
	if visited["color"] {
		cfg.HintColor = *colorFlag
	}
	if visited["single-row"] {
		cfg.SingleRow = *singleRowFlag
	}
	if visited["hints"] {
		cfg.HintsFile = *hintsFile
	}
	return cfg
}

func initializeLogger(cfg config.Config, paths *core.Paths) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logLevel := zap.NewAtomicLevelAt(level)
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// Initialize the logger
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		paths.LogFile,
	}
	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, err
	}

	return logger, nil
}

func analyticsFile(cfg config.Config, paths *core.Paths) string {
	if cfg.AnalyticsFile == "" {
		return paths.AnalyticsFile
	}
	return cfg.AnalyticsFile
}

func initializeAnalyticsManager(cfg config.Config, paths *core.Paths, logger *zap.Logger) (*analytics.AnalyticsManager, error) {
	path := analyticsFile(cfg, paths)
	if path == analyticsDisabled {
		return nil, nil
	}

	analyticsManager, err := analytics.NewAnalyticsManager(path)
	if err != nil {
		return nil, err
	}
	analyticsManager.Logger = logger

	return analyticsManager, nil
}

var errAnalyticsDisabled = errors.New("analytics are disabled in the configuration")

func printStats(cfg config.Config, paths *core.Paths) error {
	path := analyticsFile(cfg, paths)
	if path == analyticsDisabled {
		return errAnalyticsDisabled
	}

	analyticsManager, err := analytics.NewAnalyticsManager(path)
	if err != nil {
		return err
	}
	defer analyticsManager.Close()

	return analytics.WriteSummary(os.Stdout, analyticsManager, 10)
}

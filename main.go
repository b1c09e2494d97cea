package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/fieldnation/devportal/command"
	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/config/configload"
	"github.com/fieldnation/devportal/config/env"
	"github.com/fieldnation/devportal/logging"
	"github.com/fieldnation/devportal/logging/hooks"
	"github.com/fieldnation/devportal/telemetry"
	"github.com/fieldnation/devportal/utils"
)

var (
	testHook *logrustest.Hook
)

func main() {
	os.Exit(realmain(os.Args))
}

type globalFlags struct {
	Environment string `env:"environment"`
	FilePath    string `env:"file"`
	LogFormat   string `env:"log_format"`
	LogLevel    string `env:"log_level"`
	LogPretty   bool   `env:"log_pretty"`
}

func realmain(args []string) int {
	ctx := context.Background()

	if len(args) < 2 {
		command.NewHelp().Usage()
		return 1
	}

	cmd := args[1]
	if cmd == "-h" || cmd == "-help" || cmd == "--help" {
		cmd = "help"
	}
	cmdArgs := command.Args(args[2:])

	flags := globalFlags{
		FilePath:  config.DefaultFilename,
		LogFormat: config.DefaultSettings.LogFormat,
		LogLevel:  config.DefaultSettings.LogLevel,
	}
	logger := newLogger(flags.LogFormat, flags.LogLevel, flags.LogPretty)

	if err := env.Decode(&flags); err != nil {
		logger.WithError(err).Error()
		return 1
	}

	set := flag.NewFlagSet("global", flag.ContinueOnError)
	set.SetOutput(io.Discard)
	set.StringVar(&flags.FilePath, "f", flags.FilePath, "-f ./devportal.hcl")
	set.StringVar(&flags.Environment, "e", flags.Environment, "-e stage")
	set.StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "-log-format=json")
	set.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "-log-level info")
	set.BoolVar(&flags.LogPretty, "log-pretty", flags.LogPretty, "-log-pretty")
	if err := set.Parse(cmdArgs.Filter(set)); err != nil {
		logger.WithError(err).Error()
		return 1
	}

	configure(logger, flags.LogFormat, flags.LogLevel, flags.LogPretty)

	c := command.NewCommand(ctx, cmd)
	if c == nil {
		command.NewHelp().Usage()
		logger.Errorf("unknown command: %s", cmd)
		return 1
	}

	if !command.NeedsConfig(cmd) {
		if err := c.Execute(cmdArgs, nil, logger); err != nil {
			logger.WithError(err).Error()
			return 1
		}
		return 0
	}

	conf, err := loadConfig(set, &flags)
	if err != nil {
		logger.WithError(err).Error()
		return 1
	}

	// explicit flags win over the configuration file and the environment
	set.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-format":
			conf.Settings.LogFormat = flags.LogFormat
		case "log-level":
			conf.Settings.LogLevel = flags.LogLevel
		case "log-pretty":
			conf.Settings.LogPretty = flags.LogPretty
		}
	})
	configure(logger, conf.Settings.LogFormat, conf.Settings.LogLevel, conf.Settings.LogPretty)

	if _, err = maxprocs.Set(maxprocs.Logger(logger.Debugf)); err != nil {
		logger.WithError(err).Warn()
	}

	shutdown, err := telemetry.InitExporter(ctx, &telemetry.Options{
		ServiceName:    "devportal",
		Traces:         conf.Settings.Traces,
		TracesEndpoint: conf.Settings.TracesEndpoint,
	}, logger)
	if err != nil {
		logger.WithError(err).Error()
		return 1
	}
	defer func() {
		if shutdownErr := shutdown(context.Background()); shutdownErr != nil {
			logger.WithError(shutdownErr).Warn()
		}
	}()

	logger.Debugf("loaded configuration: %s", conf.Filename)

	if err = c.Execute(cmdArgs, conf, logger); err != nil {
		logger.WithError(err).Error()
		return 1
	}
	return 0
}

// loadConfig reads the given file. Without an explicit -f and without a
// devportal.hcl in the working directory the built-in layout is used.
func loadConfig(set *flag.FlagSet, flags *globalFlags) (*config.Portal, error) {
	var explicit bool
	set.Visit(func(f *flag.Flag) {
		if f.Name == "f" {
			explicit = true
		}
	})

	if !explicit && flags.FilePath == config.DefaultFilename {
		if _, err := os.Stat(config.DefaultFilename); os.IsNotExist(err) {
			return configload.LoadDefaults(flags.Environment)
		}
	}
	return configload.LoadFile(flags.FilePath, flags.Environment)
}

func newLogger(format, level string, pretty bool) *logrus.Entry {
	logger := logrus.New()
	logger.Out = os.Stdout

	logger.AddHook(&hooks.Error{})
	logger.AddHook(&hooks.Context{})

	if testHook != nil {
		logger.AddHook(testHook)
		logger.Out = io.Discard
	}

	entry := logger.WithFields(logrus.Fields{
		"build":   utils.BuildName,
		"type":    logging.DefaultConfig.TypeFieldKey,
		"version": utils.VersionName,
	})
	configure(entry, format, level, pretty)
	return entry
}

func configure(entry *logrus.Entry, format, level string, pretty bool) {
	entry.Logger.SetFormatter(logging.NewFormatter(&logging.Config{
		Format:         format,
		ParentFieldKey: logging.DefaultConfig.ParentFieldKey,
		Pretty:         pretty,
	}))
	entry.Logger.SetLevel(logging.ParseLevel(level))
}

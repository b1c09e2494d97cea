package command

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
)

type Cmd interface {
	Execute(args Args, config *config.Portal, logger *logrus.Entry) error
	Usage()
}

func NewCommand(ctx context.Context, cmd string) Cmd {
	switch strings.ToLower(cmd) {
	case "build":
		return NewBuild(ContextWithSignal(ctx))
	case "help":
		return NewHelp()
	case "llms":
		return NewLLMs(ContextWithSignal(ctx))
	case "openapi":
		return NewOpenAPI(ContextWithSignal(ctx))
	case "search":
		return NewSearch(ContextWithSignal(ctx))
	case "serve":
		return NewServe(ContextWithSignal(ctx))
	case "verify":
		return NewVerify(ctx)
	case "version":
		return NewVersion()
	default:
		return nil
	}
}

// NeedsConfig reports whether the command works on a loaded configuration.
func NeedsConfig(cmd string) bool {
	switch strings.ToLower(cmd) {
	case "help", "version":
		return false
	}
	return true
}

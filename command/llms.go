package command

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/config/runtime"
)

var _ Cmd = &LLMs{}

// LLMs writes llms.txt, llms-full.txt and one text file per page.
type LLMs struct {
	context context.Context
	flagSet *flag.FlagSet

	concurrency int
	strict      bool
}

func NewLLMs(ctx context.Context) *LLMs {
	l := &LLMs{context: ctx}
	l.flagSet = flag.NewFlagSet("llms", flag.ContinueOnError)
	l.flagSet.IntVar(&l.concurrency, "concurrency", 0, "-concurrency 8")
	l.flagSet.BoolVar(&l.strict, "strict", false, "-strict")
	return l
}

func (l *LLMs) Execute(args Args, conf *config.Portal, logger *logrus.Entry) error {
	if err := l.flagSet.Parse(args.Filter(l.flagSet)); err != nil {
		return err
	}
	if l.concurrency > 0 {
		conf.LLMs.Concurrency = l.concurrency
	}
	if l.strict {
		conf.LLMs.Strict = true
	}

	return run(conf, logger, func(p *runtime.Pipeline) error {
		_, err := p.LLMs(p.Context(l.context))
		return err
	})
}

func (l *LLMs) Usage() {
	l.flagSet.Usage()
}

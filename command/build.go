package command

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/config/runtime"
)

var _ Cmd = &Build{}

// Build runs all stages: openapi page generation, llms exports and the search index.
type Build struct {
	context context.Context
	flagSet *flag.FlagSet

	noPublish bool
	strict    bool
}

func NewBuild(ctx context.Context) *Build {
	b := &Build{context: ctx}
	b.flagSet = flag.NewFlagSet("build", flag.ContinueOnError)
	b.flagSet.BoolVar(&b.noPublish, "no-publish", false, "-no-publish")
	b.flagSet.BoolVar(&b.strict, "strict", false, "-strict")
	return b
}

func (b *Build) Execute(args Args, conf *config.Portal, logger *logrus.Entry) error {
	if err := b.flagSet.Parse(args.Filter(b.flagSet)); err != nil {
		return err
	}
	if b.strict {
		conf.LLMs.Strict = true
	}
	if b.noPublish {
		conf.Search.AlgoliaAPIKey = ""
	}

	return run(conf, logger, func(p *runtime.Pipeline) error {
		ctx := p.Context(b.context)
		if _, err := p.Generate(ctx); err != nil {
			return err
		}
		if _, err := p.LLMs(ctx); err != nil {
			return err
		}
		if _, err := p.Search(ctx); err != nil {
			return err
		}
		p.Log.WithContext(ctx).Info("build finished")
		return nil
	})
}

func (b *Build) Usage() {
	b.flagSet.Usage()
}

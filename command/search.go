package command

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/config/runtime"
)

var _ Cmd = &Search{}

// Search writes the search index and publishes it to algolia if configured.
type Search struct {
	context context.Context
	flagSet *flag.FlagSet

	noPublish bool
	output    string
}

func NewSearch(ctx context.Context) *Search {
	s := &Search{context: ctx}
	s.flagSet = flag.NewFlagSet("search", flag.ContinueOnError)
	s.flagSet.BoolVar(&s.noPublish, "no-publish", false, "-no-publish")
	s.flagSet.StringVar(&s.output, "o", "", "-o public/search-index.json")
	return s
}

func (s *Search) Execute(args Args, conf *config.Portal, logger *logrus.Entry) error {
	if err := s.flagSet.Parse(args.Filter(s.flagSet)); err != nil {
		return err
	}
	if s.output != "" {
		conf.Search.Output = s.output
	}
	if s.noPublish {
		conf.Search.AlgoliaAPIKey = ""
	}

	return run(conf, logger, func(p *runtime.Pipeline) error {
		_, err := p.Search(p.Context(s.context))
		return err
	})
}

func (s *Search) Usage() {
	s.flagSet.Usage()
}

package command

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/config/runtime"
	"github.com/fieldnation/devportal/server"
)

var _ Cmd = &Serve{}

// Serve builds the llms exporter and the search index in memory and
// serves them until the context is canceled.
type Serve struct {
	context context.Context
	flagSet *flag.FlagSet

	addr string
}

func NewServe(ctx context.Context) *Serve {
	s := &Serve{context: ctx}
	s.flagSet = flag.NewFlagSet("serve", flag.ContinueOnError)
	s.flagSet.StringVar(&s.addr, "addr", "", "-addr :3030")
	return s
}

func (s *Serve) Execute(args Args, conf *config.Portal, logger *logrus.Entry) error {
	if err := s.flagSet.Parse(args.Filter(s.flagSet)); err != nil {
		return err
	}
	if s.addr != "" {
		conf.Settings.ServeAddr = s.addr
	}

	return run(conf, logger, func(p *runtime.Pipeline) error {
		ctx := p.Context(s.context)

		exporter, err := p.Exporter(ctx)
		if err != nil {
			return err
		}
		index, err := p.SearchIndex(ctx)
		if err != nil {
			return err
		}
		versions, err := p.Versions(ctx)
		if err != nil {
			return err
		}

		srv := server.New(ctx, p.Log, conf.Settings.ServeAddr, &server.Sources{
			Index:    index,
			LLMs:     exporter,
			Metrics:  p.Metrics.Handler(),
			Versions: versions,
		})
		if err = srv.Listen(); err != nil {
			return err
		}
		return srv.Wait()
	})
}

func (s *Serve) Usage() {
	s.flagSet.Usage()
}

package command

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/config/runtime"
	"github.com/fieldnation/devportal/errors"
)

var _ Cmd = &OpenAPI{}

// OpenAPI generates the reference pages of the configured OpenAPI documents.
type OpenAPI struct {
	context context.Context
	flagSet *flag.FlagSet
	out     io.Writer

	dryRun      bool
	onCollision string
}

func NewOpenAPI(ctx context.Context) *OpenAPI {
	o := &OpenAPI{context: ctx, out: os.Stdout}
	o.flagSet = flag.NewFlagSet("openapi", flag.ContinueOnError)
	o.flagSet.BoolVar(&o.dryRun, "dry-run", false, "-dry-run")
	o.flagSet.StringVar(&o.onCollision, "on-collision", "", "-on-collision suffix")
	return o
}

func (o *OpenAPI) Execute(args Args, conf *config.Portal, logger *logrus.Entry) error {
	if err := o.flagSet.Parse(args.Filter(o.flagSet)); err != nil {
		return err
	}

	switch o.onCollision {
	case "":
	case config.CollisionError, config.CollisionSuffix:
		conf.Generate.OnCollision = o.onCollision
	default:
		return errors.Configuration.Messagef("unsupported on_collision value: %q", o.onCollision)
	}

	return run(conf, logger, func(p *runtime.Pipeline) error {
		ctx := p.Context(o.context)
		if !o.dryRun {
			_, err := p.Generate(ctx)
			return err
		}

		plan, err := p.Plan(ctx)
		if err != nil {
			return err
		}
		for _, file := range plan.Files() {
			fmt.Fprintln(o.out, file)
		}
		return nil
	})
}

func (o *OpenAPI) Usage() {
	o.flagSet.Usage()
}

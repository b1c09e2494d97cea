package command

import (
	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/config/runtime"
)

// run executes fn with a fresh pipeline and writes the metrics afterwards,
// also if fn failed.
func run(conf *config.Portal, logger *logrus.Entry, fn func(p *runtime.Pipeline) error) error {
	pipeline, err := runtime.NewPipeline(conf, logger)
	if err != nil {
		return err
	}

	err = fn(pipeline)
	if flushErr := pipeline.Flush(); flushErr != nil {
		pipeline.Log.WithError(flushErr).Error()
	}
	return err
}

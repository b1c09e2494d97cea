package hooks

import (
	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/logging"
)

var _ logrus.Hook = &Context{}

// Context copies the build id and the current stage from the entry context.
type Context struct{}

func (c *Context) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (c *Context) Fire(entry *logrus.Entry) error {
	if entry.Context == nil {
		return nil
	}

	if _, exist := entry.Data["build_id"]; !exist {
		if id := entry.Context.Value(logging.BuildID); id != nil {
			entry.Data["build_id"] = id
		}
	}

	if _, exist := entry.Data["stage"]; !exist {
		if stage := entry.Context.Value(logging.Stage); stage != nil {
			entry.Data["stage"] = stage
		}
	}
	return nil
}

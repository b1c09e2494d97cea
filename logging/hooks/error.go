package hooks

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/errors"
)

var _ logrus.Hook = &Error{}

// Error flattens the error into the log message and counts
// the error kinds if a counter is configured.
type Error struct {
	Counter *prometheus.CounterVec
}

func (l *Error) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.WarnLevel}
}

func (l *Error) Fire(entry *logrus.Entry) error {
	err, exist := entry.Data[logrus.ErrorKey]
	if !exist {
		return nil
	}

	delete(entry.Data, logrus.ErrorKey)

	gerr, ok := err.(*errors.Error)
	if !ok {
		entry.Message = errors.AppendMsg(entry.Message, fmt.Sprintf("%v", err))
		l.count("unknown")
		return nil
	}

	kind := strings.Replace(gerr.Error(), " ", "_", -1)
	if kinds := gerr.Kinds(); len(kinds) > 0 {
		entry.Data["error_type"] = kinds[0]
		kind = kinds[0]
	}
	l.count(kind)

	entry.Message = errors.AppendMsg(entry.Message, gerr.LogError())

	return nil
}

func (l *Error) count(kind string) {
	if l.Counter != nil {
		l.Counter.WithLabelValues(kind).Inc()
	}
}

package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"go.elastic.co/ecslogrus"
)

const EnvLogLevel = "LOG_LEVEL"

// CreateLogger builds the process logger. Entries are ECS formatted and go to
// stderr so that standard output carries only the ritual transcript.
func CreateLogger(serviceName string) *logrus.Logger {
	return CreateLoggerTo(serviceName, os.Stderr)
}

// CreateLoggerTo builds the process logger writing to out.
func CreateLoggerTo(serviceName string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(levelFromEnv())
	l.SetFormatter(&ecslogrus.Formatter{})
	l.AddHook(newHook(serviceName))
	return l
}

func levelFromEnv() logrus.Level {
	val, ok := os.LookupEnv(EnvLogLevel)
	if !ok {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(val)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// ExtraFieldHook stamps the service name on every entry.
type ExtraFieldHook struct {
	service string
}

func newHook(service string) *ExtraFieldHook {
	return &ExtraFieldHook{service: service}
}

func (h *ExtraFieldHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *ExtraFieldHook) Fire(entry *logrus.Entry) error {
	entry.Data["service.name"] = h.service
	return nil
}

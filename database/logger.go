package database

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = time.Second

// gormLogger routes gorm's logging through logrus at matching severities.
type gormLogger struct {
	log   logrus.FieldLogger
	level logger.LogLevel
}

func newLogger(l logrus.FieldLogger) logger.Interface {
	return &gormLogger{log: l.WithField("component", "gorm"), level: logger.Warn}
}

func (g *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{log: g.log, level: level}
}

func (g *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Info {
		g.log.Infof(msg, args...)
	}
}

func (g *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Warn {
		g.log.Warnf(msg, args...)
	}
}

func (g *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Error {
		g.log.Errorf(msg, args...)
	}
}

// Trace reports failed statements at error and slow ones at warn. Missing
// records are expected by callers and are not reported.
func (g *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		g.log.WithError(err).WithFields(logrus.Fields{"sql": sql, "rows": rows, "elapsed": elapsed}).Error("Query failed.")
	case elapsed > slowQueryThreshold && g.level >= logger.Warn:
		sql, rows := fc()
		g.log.WithFields(logrus.Fields{"sql": sql, "rows": rows, "elapsed": elapsed}).Warn("Slow query.")
	case g.level >= logger.Info:
		sql, rows := fc()
		g.log.WithFields(logrus.Fields{"sql": sql, "rows": rows, "elapsed": elapsed}).Debug("Query executed.")
	}
}

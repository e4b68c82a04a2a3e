package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGormLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(g logger.Interface)
		level logrus.Level
	}{
		{"error", func(g logger.Interface) {
			g.Error(context.Background(), "failed to initialize database, got error %v", errors.New("refused"))
		}, logrus.ErrorLevel},
		{"warn", func(g logger.Interface) { g.Warn(context.Background(), "careful") }, logrus.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, hook := test.NewNullLogger()
			tt.log(newLogger(l))

			require.Len(t, hook.AllEntries(), 1)
			assert.Equal(t, tt.level, hook.LastEntry().Level)
		})
	}
}

func TestGormLogger_InfoSuppressedAtWarn(t *testing.T) {
	l, hook := test.NewNullLogger()
	newLogger(l).Info(context.Background(), "noise")
	assert.Empty(t, hook.AllEntries())
}

func TestGormLogger_Trace(t *testing.T) {
	fc := func() (string, int64) { return "SELECT 1", 1 }

	l, hook := test.NewNullLogger()
	g := newLogger(l)

	g.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Empty(t, hook.AllEntries())

	g.Trace(context.Background(), time.Now(), fc, errors.New("syntax error"))
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "SELECT 1", hook.LastEntry().Data["sql"])

	g.Trace(context.Background(), time.Now().Add(-2*slowQueryThreshold), fc, nil)
	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	hook.Reset()
	g.LogMode(logger.Silent).Trace(context.Background(), time.Now(), fc, errors.New("syntax error"))
	assert.Empty(t, hook.AllEntries())
}

package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"atlas-wizards/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const merlinTranscript = `Merlin casts a spell of level 99!
A powerful wizard appears!
Magic surge #0
Magic surge #1
Magic surge #2
Power drains...
Caught error: Spell misfire!
`

func setupEnv(t *testing.T) {
	t.Setenv("JAEGER_DISABLED", "true")
	t.Setenv("WIZARD_NAME", "")
	t.Setenv("WIZARD_LEVEL", "")
	t.Setenv("TENANT_ID", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("BOOTSTRAP_SERVERS", "")
}

func runWith(t *testing.T) (string, string) {
	t.Helper()
	var out, logs bytes.Buffer
	l := logrus.New()
	l.SetOutput(&logs)
	l.SetLevel(logrus.DebugLevel)

	require.NoError(t, run(l, service.NewManager(), &out))
	return out.String(), logs.String()
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "atlas-wizards", serviceName)
}

func TestRun_DefaultTranscript(t *testing.T) {
	setupEnv(t)

	out, logs := runWith(t)

	assert.Equal(t, merlinTranscript, out)
	assert.Contains(t, logs, "No database configured")
	assert.Contains(t, logs, "span.name=atlas-wizards")
}

func TestRun_ConfiguredWizard(t *testing.T) {
	setupEnv(t)
	t.Setenv("WIZARD_NAME", "Apprentice")
	t.Setenv("WIZARD_LEVEL", "0")

	out, _ := runWith(t)

	assert.Equal(t, `Apprentice casts a spell of level 0!
Magic surge #0
Magic surge #1
Magic surge #2
Caught error: Spell misfire!
`, out)
}

func TestRun_WithSqliteStore(t *testing.T) {
	setupEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", ":memory:")

	out, logs := runWith(t)

	assert.Equal(t, merlinTranscript, out)
	assert.Contains(t, logs, "Wizard summoned.")
}

func TestRun_BrokenStoreDoesNotChangeTranscript(t *testing.T) {
	setupEnv(t)
	t.Setenv("DB_DRIVER", "oracle")

	out, logs := runWith(t)

	assert.Equal(t, merlinTranscript, out)
	assert.Contains(t, logs, "Unable to connect to database")
}

func TestRun_ShutdownAbandonsDatabaseConnect(t *testing.T) {
	setupEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "1")

	tdm := service.NewManager()
	tdm.Shutdown()

	var out bytes.Buffer
	start := time.Now()
	err := run(logrus.New(), tdm, &out)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, out.String())
}

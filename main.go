package main

import (
	"context"
	"errors"
	"io"
	"os"

	"atlas-wizards/config"
	"atlas-wizards/database"
	"atlas-wizards/kafka/producer"
	"atlas-wizards/logger"
	"atlas-wizards/ritual"
	"atlas-wizards/service"
	"atlas-wizards/tracing"
	"atlas-wizards/wizard"
	"github.com/Chronicle20/atlas-tenant"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const serviceName = "atlas-wizards"

func main() {
	l := logger.CreateLogger(serviceName)
	l.Infoln("Starting main service.")

	if err := run(l, service.GetTeardownManager(), os.Stdout); err != nil {
		l.WithError(err).Fatal("Ritual failed.")
	}
	l.Infoln("Service shutdown.")
}

// run summons the configured wizard and performs its ritual on out. Storage
// and events are optional; their failures are logged and never reach out.
func run(l logrus.FieldLogger, tdm *service.Manager, out io.Writer) error {
	go tdm.Wait()
	defer tdm.Shutdown()

	tc, err := tracing.InitTracer(l)(serviceName)
	if err != nil {
		return err
	}
	tdm.TeardownFunc(tracing.Teardown(l)(tc))

	l, span := tracing.StartSpan(l, serviceName)
	defer span.Finish()

	c := config.Load(l)
	t, err := tenant.Create(c.TenantId(), "wizards", 1, 0)
	if err != nil {
		return err
	}
	ctx := opentracing.ContextWithSpan(tenant.WithContext(tdm.Context(), t), span)

	var db *gorm.DB
	db, err = database.Connect(l, database.SetContext(ctx), database.FromEnv(), database.SetMigrations(wizard.Migration))
	switch {
	case errors.Is(err, database.ErrNoDriver):
		l.Debug("No database configured, wizard will not be stored.")
	case errors.Is(err, context.Canceled):
		return err
	case err != nil:
		l.WithError(err).Warn("Unable to connect to database, wizard will not be stored.")
	default:
		tdm.TeardownFunc(database.Teardown(l)(db))
	}

	m, err := wizard.NewProcessor(l, ctx, db).Summon(c.WizardName(), c.WizardLevel())()
	if err != nil {
		l.WithError(err).Warn("Unable to store wizard.")
		m = wizard.NewBuilder(c.WizardName(), c.WizardLevel()).Build()
	}

	r := ritual.New(l, ctx, out)
	if len(producer.LookupBrokers()) > 0 {
		r = r.WithProducer(producer.ProviderImpl(l))
	}
	return r.Perform(m)
}

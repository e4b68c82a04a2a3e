package ritual

import (
	"context"
	"errors"
	"fmt"
	"io"

	"atlas-wizards/kafka/message"
	wizardMsg "atlas-wizards/kafka/message/wizard"
	"atlas-wizards/kafka/producer"
	"atlas-wizards/tracing"
	"atlas-wizards/wizard"
	"github.com/sirupsen/logrus"
)

// SurgeCount is the number of magic surges printed, regardless of level.
const SurgeCount = 3

// Ritual performs the wizard's fixed sequence, writing the transcript to out.
type Ritual struct {
	log      logrus.FieldLogger
	ctx      context.Context
	out      io.Writer
	producer func(ctx context.Context) producer.Provider
	misfire  func() error
}

// New returns a ritual writing to out. ctx supplies the tenant and parent
// span; the built-in Misfire is used unless replaced.
func New(l logrus.FieldLogger, ctx context.Context, out io.Writer) *Ritual {
	return &Ritual{
		log:     l.WithField("component", "ritual"),
		ctx:     ctx,
		out:     out,
		misfire: Misfire,
	}
}

// WithProducer enables status events. Events are emitted after the
// transcript is complete; failure to emit is logged and otherwise ignored.
func (r *Ritual) WithProducer(p func(ctx context.Context) producer.Provider) *Ritual {
	r.producer = p
	return r
}

// WithMisfire replaces the failing spell.
func (r *Ritual) WithMisfire(f func() error) *Ritual {
	r.misfire = f
	return r
}

// Perform runs the sequence for m. It returns an error only when writing the
// transcript fails or the spell fails with something other than a
// *SpellError.
func (r *Ritual) Perform(m wizard.Model) error {
	l, span, ctx := tracing.StartSpanFromContext(r.ctx, r.log, "ritual")
	defer span.Finish()
	l = l.WithFields(logrus.Fields{"name": m.Name(), "level": m.Level()})
	l.Debug("Ritual started.")

	if err := r.step(ctx, l, "cast-spell", func() error {
		return m.CastSpell(r.out)
	}); err != nil {
		return err
	}

	if err := r.step(ctx, l, "threshold", func() error {
		if !m.IsPowerful() {
			return nil
		}
		return r.println("A powerful wizard appears!")
	}); err != nil {
		return err
	}

	if err := r.step(ctx, l, "surge", func() error {
		for i := 0; i < SurgeCount; i++ {
			if err := r.println(fmt.Sprintf("Magic surge #%d", i)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	drained := false
	if err := r.step(ctx, l, "drain", func() error {
		if m.Level() <= 0 {
			return nil
		}
		drained = true
		return r.println("Power drains...")
	}); err != nil {
		return err
	}

	var caught *SpellError
	if err := r.step(ctx, l, "misfire", func() error {
		err := r.misfire()
		if err == nil {
			return nil
		}
		if !errors.As(err, &caught) {
			return err
		}
		return r.println("Caught error: " + caught.Message)
	}); err != nil {
		return err
	}

	l.WithField("drained", drained).Debug("Ritual complete.")
	r.emit(ctx, l, m, drained, caught)
	return nil
}

func (r *Ritual) step(ctx context.Context, l logrus.FieldLogger, name string, f func() error) error {
	sl, span, _ := tracing.StartSpanFromContext(ctx, l, name)
	defer span.Finish()

	if err := f(); err != nil {
		span.SetTag("error", true)
		sl.WithError(err).Errorf("Ritual step [%s] failed.", name)
		return err
	}
	sl.Debugf("Ritual step [%s] complete.", name)
	return nil
}

func (r *Ritual) println(line string) error {
	_, err := fmt.Fprintln(r.out, line)
	return err
}

func (r *Ritual) emit(ctx context.Context, l logrus.FieldLogger, m wizard.Model, drained bool, caught *SpellError) {
	if r.producer == nil {
		return
	}
	err := message.Emit(r.producer(ctx))(func(buf *message.Buffer) error {
		if err := buf.Put(wizardMsg.EnvEventTopicStatus, wizard.SpellCastEventProvider(m, SurgeCount, drained)); err != nil {
			return err
		}
		if caught == nil {
			return nil
		}
		return buf.Put(wizardMsg.EnvEventTopicStatus, wizard.MisfireEventProvider(m, caught.Message))
	})
	if err != nil {
		l.WithError(err).Warn("Unable to emit wizard status events.")
	}
}

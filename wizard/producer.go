package wizard

import (
	"atlas-wizards/kafka/message/wizard"
	"github.com/Chronicle20/atlas-kafka/producer"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/segmentio/kafka-go"
)

// SpellCastEventProvider produces the status event for a completed ritual.
func SpellCastEventProvider(m Model, surges int, drained bool) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(m.Id()))
	value := &wizard.StatusEvent[wizard.SpellCastStatusEventBody]{
		WizardId: m.Id(),
		Name:     m.Name(),
		Type:     wizard.StatusEventTypeSpellCast,
		Body: wizard.SpellCastStatusEventBody{
			Level:    m.Level(),
			Powerful: m.IsPowerful(),
			Surges:   surges,
			Drained:  drained,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

// MisfireEventProvider produces the status event for an intercepted misfire.
func MisfireEventProvider(m Model, message string) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(m.Id()))
	value := &wizard.StatusEvent[wizard.MisfireStatusEventBody]{
		WizardId: m.Id(),
		Name:     m.Name(),
		Type:     wizard.StatusEventTypeMisfire,
		Body: wizard.MisfireStatusEventBody{
			Message: message,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

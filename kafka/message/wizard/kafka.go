package wizard

const (
	EnvEventTopicStatus = "EVENT_TOPIC_WIZARD_STATUS"

	StatusEventTypeSpellCast = "SPELL_CAST"
	StatusEventTypeMisfire   = "MISFIRE"
)

type StatusEvent[E any] struct {
	WizardId uint32 `json:"wizardId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Body     E      `json:"body"`
}

type SpellCastStatusEventBody struct {
	Level    int  `json:"level"`
	Powerful bool `json:"powerful"`
	Surges   int  `json:"surges"`
	Drained  bool `json:"drained"`
}

type MisfireStatusEventBody struct {
	Message string `json:"message"`
}

package wizard

import (
	"fmt"
	"io"
)

// PowerfulThreshold is the level a wizard must exceed to be announced as powerful.
const PowerfulThreshold = 50

// Model is an immutable wizard. Neither name nor level is validated; a level
// of zero or below is a legitimate, if drained, wizard.
type Model struct {
	id    uint32
	name  string
	level int
}

// Id returns the persisted identifier, or 0 for a wizard that was never stored.
func (m Model) Id() uint32 {
	return m.id
}

func (m Model) Name() string {
	return m.name
}

// Level returns the wizard level as given at construction.
func (m Model) Level() int {
	return m.level
}

// IsPowerful reports whether the level exceeds PowerfulThreshold.
func (m Model) IsPowerful() bool {
	return m.level > PowerfulThreshold
}

// CastSpell announces the wizard on w.
func (m Model) CastSpell(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s casts a spell of level %d!\n", m.name, m.level)
	return err
}

// Builder returns a builder seeded with m, for copy-on-write changes.
func (m Model) Builder() *Builder {
	return &Builder{
		id:    m.id,
		name:  m.name,
		level: m.level,
	}
}

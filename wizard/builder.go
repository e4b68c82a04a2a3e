package wizard

// Builder assembles an immutable wizard Model.
type Builder struct {
	id    uint32
	name  string
	level int
}

// NewBuilder starts a builder for an unstored wizard.
func NewBuilder(name string, level int) *Builder {
	return &Builder{
		name:  name,
		level: level,
	}
}

// SetId sets the storage id; 0 means not stored.
func (b *Builder) SetId(id uint32) *Builder {
	b.id = id
	return b
}

// SetName sets the wizard name.
func (b *Builder) SetName(name string) *Builder {
	b.name = name
	return b
}

// SetLevel sets the level. Any value is accepted.
func (b *Builder) SetLevel(level int) *Builder {
	b.level = level
	return b
}

// Build returns the wizard.
func (b *Builder) Build() Model {
	return Model{
		id:    b.id,
		name:  b.name,
		level: b.level,
	}
}

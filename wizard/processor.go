package wizard

import (
	"context"
	"errors"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/Chronicle20/atlas-tenant"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrNoStore is returned by lookups when the processor has no database.
var ErrNoStore = errors.New("wizard store not configured")

// Processor summons and looks up wizards for the tenant carried by its context.
type Processor interface {
	// Summon returns the wizard with the given name and level, storing it for
	// the tenant when a store is configured.
	Summon(name string, level int) model.Provider[Model]
	// ByIdProvider returns a provider for the stored wizard with the given id.
	ByIdProvider(id uint32) model.Provider[Model]
	// GetById retrieves the stored wizard with the given id.
	GetById(id uint32) (Model, error)
	// ByNameProvider returns a provider for the stored wizard with the given name.
	ByNameProvider(name string) model.Provider[Model]
	// GetByName retrieves the stored wizard with the given name.
	GetByName(name string) (Model, error)
}

type ProcessorImpl struct {
	log logrus.FieldLogger
	ctx context.Context
	db  *gorm.DB
	t   tenant.Model
}

// NewProcessor expects ctx to carry a tenant. db may be nil, in which case
// wizards are never stored.
func NewProcessor(l logrus.FieldLogger, ctx context.Context, db *gorm.DB) Processor {
	return &ProcessorImpl{
		log: l,
		ctx: ctx,
		db:  db,
		t:   tenant.MustFromContext(ctx),
	}
}

func (p *ProcessorImpl) Summon(name string, level int) model.Provider[Model] {
	return func() (Model, error) {
		if p.db == nil {
			return NewBuilder(name, level).Build(), nil
		}

		var result Model
		err := p.db.WithContext(p.ctx).Transaction(func(tx *gorm.DB) error {
			e, err := getByName(tx)(p.t.Id(), name)()
			if errors.Is(err, ErrNotFound) {
				e, err = create(tx, p.log)(p.t.Id(), name, level)()
			} else if err == nil && e.Level != level {
				e, err = updateLevel(tx, p.log)(p.t.Id(), e.ID, level)()
			}
			if err != nil {
				return err
			}
			result = Make(e)
			return nil
		})
		if err != nil {
			return Model{}, err
		}
		p.log.WithFields(logrus.Fields{
			"wizardId": result.Id(),
			"name":     result.Name(),
			"level":    result.Level(),
		}).Debug("Wizard summoned.")
		return result, nil
	}
}

func (p *ProcessorImpl) ByIdProvider(id uint32) model.Provider[Model] {
	if p.db == nil {
		return errorProvider(ErrNoStore)
	}
	return makeModel(getById(p.db.WithContext(p.ctx))(p.t.Id(), id))
}

func (p *ProcessorImpl) GetById(id uint32) (Model, error) {
	return p.ByIdProvider(id)()
}

func (p *ProcessorImpl) ByNameProvider(name string) model.Provider[Model] {
	if p.db == nil {
		return errorProvider(ErrNoStore)
	}
	return makeModel(getByName(p.db.WithContext(p.ctx))(p.t.Id(), name))
}

func (p *ProcessorImpl) GetByName(name string) (Model, error) {
	return p.ByNameProvider(name)()
}

func errorProvider(err error) model.Provider[Model] {
	return func() (Model, error) {
		return Model{}, err
	}
}

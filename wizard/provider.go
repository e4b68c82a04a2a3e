package wizard

import (
	"errors"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no wizard matches within the tenant.
var ErrNotFound = errors.New("wizard not found")

func getById(db *gorm.DB) func(tenantId uuid.UUID, id uint32) model.Provider[Entity] {
	return func(tenantId uuid.UUID, id uint32) model.Provider[Entity] {
		return func() (Entity, error) {
			var e Entity
			err := db.Where("id = ? AND tenant_id = ?", id, tenantId).First(&e).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Entity{}, ErrNotFound
			}
			return e, err
		}
	}
}

func getByName(db *gorm.DB) func(tenantId uuid.UUID, name string) model.Provider[Entity] {
	return func(tenantId uuid.UUID, name string) model.Provider[Entity] {
		return func() (Entity, error) {
			var e Entity
			err := db.Where("name = ? AND tenant_id = ?", name, tenantId).First(&e).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Entity{}, ErrNotFound
			}
			return e, err
		}
	}
}

func makeModel(p model.Provider[Entity]) model.Provider[Model] {
	return func() (Model, error) {
		e, err := p()
		if err != nil {
			return Model{}, err
		}
		return Make(e), nil
	}
}

package wizard

import (
	"time"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func create(db *gorm.DB, l logrus.FieldLogger) func(tenantId uuid.UUID, name string, level int) model.Provider[Entity] {
	return func(tenantId uuid.UUID, name string, level int) model.Provider[Entity] {
		return func() (Entity, error) {
			l.WithFields(logrus.Fields{
				"name":     name,
				"level":    level,
				"tenantId": tenantId,
			}).Debug("Creating wizard entity.")

			now := time.Now()
			e := Entity{
				TenantId:  tenantId,
				Name:      name,
				Level:     level,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := db.Create(&e).Error; err != nil {
				return Entity{}, err
			}
			return e, nil
		}
	}
}

func updateLevel(db *gorm.DB, l logrus.FieldLogger) func(tenantId uuid.UUID, id uint32, level int) model.Provider[Entity] {
	return func(tenantId uuid.UUID, id uint32, level int) model.Provider[Entity] {
		return func() (Entity, error) {
			l.WithFields(logrus.Fields{
				"wizardId": id,
				"level":    level,
				"tenantId": tenantId,
			}).Debug("Updating wizard level.")

			res := db.Model(&Entity{}).
				Where("id = ? AND tenant_id = ?", id, tenantId).
				Updates(map[string]interface{}{"level": level, "updated_at": time.Now()})
			if res.Error != nil {
				return Entity{}, res.Error
			}
			if res.RowsAffected == 0 {
				return Entity{}, ErrNotFound
			}
			return getById(db)(tenantId, id)()
		}
	}
}

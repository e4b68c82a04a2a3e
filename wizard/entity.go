package wizard

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is the stored form of a wizard. Names are unique per tenant.
type Entity struct {
	ID        uint32    `gorm:"primaryKey;autoIncrement"`
	TenantId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wizard_tenant_name"`
	Name      string    `gorm:"not null;uniqueIndex:idx_wizard_tenant_name"`
	Level     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Entity) TableName() string {
	return "wizards"
}

// Migration creates or updates the wizards table.
func Migration(db *gorm.DB) error {
	return db.AutoMigrate(&Entity{})
}

// Make converts a stored row into a Model.
func Make(e Entity) Model {
	return NewBuilder(e.Name, e.Level).SetId(e.ID).Build()
}

// ToEntity converts m into a row owned by tenantId.
func (m Model) ToEntity(tenantId uuid.UUID) Entity {
	return Entity{
		ID:       m.id,
		TenantId: tenantId,
		Name:     m.name,
		Level:    m.level,
	}
}

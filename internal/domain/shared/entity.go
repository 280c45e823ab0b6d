package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base for all persisted records
type Entity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// NewEntity creates a new entity with a generated ID and timestamps
func NewEntity() Entity {
	now := time.Now()
	return Entity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the entity's UpdatedAt timestamp
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now()
}

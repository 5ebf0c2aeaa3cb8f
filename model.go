package responsable

import (
	"time"

	"gorm.io/gorm"
)

// A Model is the essential data points for primary ID-based models,
// indicating when a record was created, last updated and soft deleted.
//
// Model satisfies the constraint cursor pagination requires of records.
type Model struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// GetID returns the primary key of the record.
func (m Model) GetID() uint { return m.ID }

// Exists asserts whether the record has been persisted.
func (m Model) Exists() bool { return !m.CreatedAt.IsZero() }

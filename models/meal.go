package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// A committed Meal. Immutable once created; there is no update path, only
// create and read. Macros are stored as the inference service reported them;
// kcal is an independent field, never recomputed from the macros.
type Meal struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	WeightG   *int      `json:"weight_g"`
	Kcal      int       `json:"kcal"`
	ProteinG  int       `json:"protein_g"`
	CarbsG    int       `json:"carbs_g"`
	FatG      int       `json:"fat_g"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Medicine is a scheduled daily dose. "Taken today" is never stored on the
// row; it is derived from Intakes on every read.
type Medicine struct {
	ID        string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string           `gorm:"not null" json:"name"`
	Dosage    string           `gorm:"not null" json:"dosage"`
	Time      string           `gorm:"size:5;not null" json:"time"` // "HH:MM"
	CreatedAt time.Time        `json:"createdAt"`
	Intakes   []MedicineIntake `gorm:"constraint:OnDelete:CASCADE" json:"intakes"`
}

// One act of taking a dose. An intake never outlives its medicine.
type MedicineIntake struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	MedicineID string    `gorm:"index;not null" json:"medicineId"`
	TakenAt    time.Time `gorm:"not null" json:"takenAt"`
}

func (m *Medicine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (i *MedicineIntake) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

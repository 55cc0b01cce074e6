package services

import (
	"errors"
	"fmt"
	"time"

	"nutritrack/models"
	"nutritrack/utils"

	"gorm.io/gorm"
)

// MedicineService owns the medication schedule and the intake log.
type MedicineService struct {
	db *gorm.DB
}

func NewMedicineService(db *gorm.DB) *MedicineService {
	return &MedicineService{db: db}
}

// MedicineCreateRequest mirrors the add-medication form. Override acknowledges
// a contraindication warning and lets creation proceed anyway.
type MedicineCreateRequest struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Time     string `json:"time"` // "HH:MM"
	Override bool   `json:"override"`
}

// Create validates the request, runs the contraindication check, and persists
// the medicine. A watch-list hit without an explicit override blocks creation
// and returns the advisory instead; an overridden hit is persisted and emits
// a warning alert.
func (s *MedicineService) Create(req MedicineCreateRequest) (*models.Medicine, *utils.InteractionWarning, error) {
	if req.Name == "" || req.Dosage == "" || req.Time == "" {
		return nil, nil, fmt.Errorf("%w: name, dosage and time are required", ErrInvalidInput)
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, nil, fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}

	warning := utils.CheckInteractions(req.Name)
	if warning.Warn && !req.Override {
		return nil, &warning, nil
	}

	med := &models.Medicine{
		Name:    req.Name,
		Dosage:  req.Dosage,
		Time:    req.Time,
		Intakes: []models.MedicineIntake{},
	}
	if err := s.db.Create(med).Error; err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if warning.Warn {
		EmitAlert("warning", fmt.Sprintf("%s added despite warning: %s", med.Name, warning.Reason))
		return med, &warning, nil
	}
	return med, nil, nil
}

// List returns all medicines sorted ascending by scheduled time, with their
// full intake history preloaded.
func (s *MedicineService) List() ([]models.Medicine, error) {
	var meds []models.Medicine
	err := s.db.Preload("Intakes").Order("time asc").Find(&meds).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return meds, nil
}

func (s *MedicineService) Get(id string) (*models.Medicine, error) {
	var med models.Medicine
	err := s.db.Preload("Intakes").First(&med, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: medicine %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &med, nil
}

// RecordIntake appends a dose-taken record stamped with the current instant
// and returns the medicine with its full intake history.
func (s *MedicineService) RecordIntake(id string) (*models.Medicine, error) {
	med, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	intake := &models.MedicineIntake{MedicineID: med.ID, TakenAt: time.Now()}
	if err := s.db.Create(intake).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return s.Get(id)
}

// Delete removes the medicine and all of its intakes in one transaction.
func (s *MedicineService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var med models.Medicine
		if err := tx.First(&med, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: medicine %s", ErrNotFound, id)
			}
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if err := tx.Where("medicine_id = ?", id).Delete(&models.MedicineIntake{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if err := tx.Delete(&models.Medicine{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
}

// IsTakenToday derives the daily taken flag: true iff any intake falls on the
// same local calendar day as now. Recomputed on every read, never cached.
func IsTakenToday(med models.Medicine, now time.Time) bool {
	y, m, d := now.Date()
	for _, in := range med.Intakes {
		iy, im, id := in.TakenAt.In(now.Location()).Date()
		if iy == y && im == m && id == d {
			return true
		}
	}
	return false
}

// NextUpcoming returns the first medicine whose scheduled time today is still
// ahead of now, or nil when none remain (no look-ahead to tomorrow). The slice
// is walked in order, so callers pass it pre-sorted ascending by time, which
// List already does.
func NextUpcoming(meds []models.Medicine, now time.Time) *models.Medicine {
	for i := range meds {
		hh, mm, ok := parseClock(meds[i].Time)
		if !ok {
			continue
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), hh, mm, 0, 0, now.Location())
		if at.After(now) {
			return &meds[i]
		}
	}
	return nil
}

func parseClock(v string) (int, int, bool) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

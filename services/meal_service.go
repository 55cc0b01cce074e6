package services

import (
	"fmt"
	"time"

	"nutritrack/models"

	"gorm.io/gorm"
)

// MealService is the append-only per-day meal store.
type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// Create commits a confirmed draft as an immutable Meal. The id and creation
// timestamp are assigned here, never by the caller.
func (s *MealService) Create(draft MealDraft) (*models.Meal, error) {
	if draft.Name == "" {
		return nil, fmt.Errorf("%w: meal name is required", ErrInvalidInput)
	}

	meal := &models.Meal{
		Name:     draft.Name,
		WeightG:  draft.WeightG,
		Kcal:     draft.Kcal,
		ProteinG: draft.ProteinG,
		CarbsG:   draft.CarbsG,
		FatG:     draft.FatG,
	}
	if err := s.db.Create(meal).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return meal, nil
}

// ListToday returns meals committed during the current local calendar day,
// most recent first. Read failures surface as ErrStoreUnavailable; whether to
// degrade to an empty list is the HTTP layer's call, not the store's.
func (s *MealService) ListToday() ([]models.Meal, error) {
	start, end := dayWindow(time.Now())

	var meals []models.Meal
	err := s.db.
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return meals, nil
}

// DailySummary aggregates today's committed meals.
type DailySummary struct {
	Meals    int `json:"meals"`
	Kcal     int `json:"kcal"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

func (s *MealService) SummaryToday() (*DailySummary, error) {
	meals, err := s.ListToday()
	if err != nil {
		return nil, err
	}

	sum := &DailySummary{Meals: len(meals)}
	for _, m := range meals {
		sum.Kcal += m.Kcal
		sum.ProteinG += m.ProteinG
		sum.CarbsG += m.CarbsG
		sum.FatG += m.FatG
	}
	return sum, nil
}

func dayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.Add(24 * time.Hour)
}

package services

import (
	"testing"
	"time"

	"nutritrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealCreateAssignsIDAndTimestamp(t *testing.T) {
	svc := NewMealService(newTestDB(t))

	before := time.Now()
	weight := 180
	meal, err := svc.Create(MealDraft{Name: "Apple", WeightG: &weight, Kcal: 95, CarbsG: 25})
	require.NoError(t, err)

	assert.NotEmpty(t, meal.ID)
	assert.Equal(t, "Apple", meal.Name)
	assert.Equal(t, 95, meal.Kcal)
	require.NotNil(t, meal.WeightG)
	assert.Equal(t, 180, *meal.WeightG)
	assert.False(t, meal.CreatedAt.Before(before))
}

func TestMealCreateRequiresName(t *testing.T) {
	svc := NewMealService(newTestDB(t))

	_, err := svc.Create(MealDraft{Kcal: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMealListTodayOrdersRecentFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)

	start, _ := dayWindow(time.Now())
	older := models.Meal{ID: "m-old", Name: "Oatmeal", Kcal: 300, CreatedAt: start.Add(1 * time.Minute)}
	newer := models.Meal{ID: "m-new", Name: "Salad", Kcal: 220, CreatedAt: start.Add(2 * time.Minute)}
	yesterday := models.Meal{ID: "m-yday", Name: "Pizza", Kcal: 800, CreatedAt: start.Add(-1 * time.Hour)}
	for _, m := range []models.Meal{older, newer, yesterday} {
		require.NoError(t, db.Create(&m).Error)
	}

	meals, err := svc.ListToday()
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "Salad", meals[0].Name)
	assert.Equal(t, "Oatmeal", meals[1].Name)
}

func TestMealSummaryToday(t *testing.T) {
	svc := NewMealService(newTestDB(t))

	_, err := svc.Create(MealDraft{Name: "Apple", Kcal: 95, CarbsG: 25})
	require.NoError(t, err)
	_, err = svc.Create(MealDraft{Name: "Chicken", Kcal: 330, ProteinG: 40, FatG: 12})
	require.NoError(t, err)

	sum, err := svc.SummaryToday()
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Meals)
	assert.Equal(t, 425, sum.Kcal)
	assert.Equal(t, 40, sum.ProteinG)
	assert.Equal(t, 25, sum.CarbsG)
	assert.Equal(t, 12, sum.FatG)
}

package controllers

import (
	"log"
	"net/http"

	"nutritrack/models"
	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{Meals: meals}
}

// GET /meal returns today's meals, most recent first. Read failures degrade to an
// empty list so the dashboard renders; the outage is only logged. Known
// limitation: callers cannot tell "no meals" from "store down" here.
func (mc *MealController) ListToday(c *gin.Context) {
	meals, err := mc.Meals.ListToday()
	if err != nil {
		log.Printf("meal list failed: %v", err)
		c.JSON(http.StatusOK, []models.Meal{})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// POST /meal is the direct commit path for pre-confirmed payloads.
func (mc *MealController) Create(c *gin.Context) {
	var draft services.MealDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := mc.Meals.Create(draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// GET /meal/summary
func (mc *MealController) SummaryToday(c *gin.Context) {
	sum, err := mc.Meals.SummaryToday()
	if err != nil {
		log.Printf("meal summary failed: %v", err)
		c.JSON(http.StatusOK, services.DailySummary{})
		return
	}
	c.JSON(http.StatusOK, sum)
}

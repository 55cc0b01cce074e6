package controllers

import (
	"log"
	"net/http"
	"time"

	"nutritrack/models"
	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

type MedicineController struct {
	Meds *services.MedicineService
}

func NewMedicineController(meds *services.MedicineService) *MedicineController {
	return &MedicineController{Meds: meds}
}

// medicineView adds the derived daily adherence flag to the stored record.
type medicineView struct {
	models.Medicine
	TakenToday bool `json:"taken_today"`
}

func viewOf(med models.Medicine, now time.Time) medicineView {
	return medicineView{Medicine: med, TakenToday: services.IsTakenToday(med, now)}
}

// GET /medicine lists all medicines sorted ascending by scheduled time. Read
// failures degrade
// to an empty list, matching the meal listing policy.
func (mc *MedicineController) List(c *gin.Context) {
	meds, err := mc.Meds.List()
	if err != nil {
		log.Printf("medicine list failed: %v", err)
		c.JSON(http.StatusOK, []medicineView{})
		return
	}

	now := time.Now()
	views := make([]medicineView, 0, len(meds))
	for _, m := range meds {
		views = append(views, viewOf(m, now))
	}
	c.JSON(http.StatusOK, views)
}

// POST /medicine. Contraindication hits without override come back 409 with
// the advisory; the client must resubmit with override=true to proceed.
func (mc *MedicineController) Create(c *gin.Context) {
	var req services.MedicineCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	med, warning, err := mc.Meds.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	if med == nil {
		c.JSON(http.StatusConflict, warning)
		return
	}
	c.JSON(http.StatusCreated, viewOf(*med, time.Now()))
}

// GET /medicine/next returns the earliest dose still ahead of now today, if any.
func (mc *MedicineController) Next(c *gin.Context) {
	meds, err := mc.Meds.List()
	if err != nil {
		log.Printf("medicine list failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"medicine": nil})
		return
	}

	next := services.NextUpcoming(meds, time.Now())
	if next == nil {
		c.JSON(http.StatusOK, gin.H{"medicine": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicine": viewOf(*next, time.Now())})
}

// GET /medicine/:id
func (mc *MedicineController) Get(c *gin.Context) {
	med, err := mc.Meds.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(*med, time.Now()))
}

// PATCH /medicine/:id/take
func (mc *MedicineController) Take(c *gin.Context) {
	med, err := mc.Meds.RecordIntake(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(*med, time.Now()))
}

// DELETE /medicine/:id cascades to the medicine's intakes.
func (mc *MedicineController) Delete(c *gin.Context) {
	if err := mc.Meds.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

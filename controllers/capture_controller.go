package controllers

import (
	"io"
	"log"
	"net/http"

	"nutritrack/services"
	"nutritrack/utils"

	"github.com/gin-gonic/gin"
)

type CaptureController struct {
	Capture *services.CaptureService
	RT      *services.RealtimeHub
}

func NewCaptureController(capture *services.CaptureService, rt *services.RealtimeHub) *CaptureController {
	return &CaptureController{Capture: capture, RT: rt}
}

type captureTextRequest struct {
	Description string `json:"description"`
	WeightG     *int   `json:"weight_g"`
}

// POST /capture/image
func (cc *CaptureController) SubmitImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		file, err = c.FormFile("file") // the web client posts the part as "file"
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable image"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable image"})
		return
	}

	draft, err := cc.Capture.SubmitImage(data, file.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	if utils.S3Enabled() {
		contentType := file.Header.Get("Content-Type")
		go func() {
			if _, err := utils.UploadMealPhoto(data, contentType); err != nil {
				log.Printf("photo archive failed: %v", err)
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{"state": services.StateConfirming, "draft": draft})
}

// POST /capture/quick
func (cc *CaptureController) SubmitQuick(c *gin.Context) {
	var req captureTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := cc.Capture.SubmitQuick(req.Description, req.WeightG)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": services.StateConfirming, "draft": draft})
}

// POST /capture/text
func (cc *CaptureController) SubmitDetailed(c *gin.Context) {
	var req captureTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := cc.Capture.SubmitDetailed(req.Description, req.WeightG)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": services.StateConfirming, "draft": draft})
}

// POST /capture/confirm
func (cc *CaptureController) Confirm(c *gin.Context) {
	meal, err := cc.Capture.Confirm()
	if err != nil {
		respondError(c, err)
		return
	}

	if cc.RT != nil {
		cc.RT.Broadcast(map[string]any{"kind": "meal.logged", "meal": meal})
	}
	c.JSON(http.StatusCreated, meal)
}

// POST /capture/cancel
func (cc *CaptureController) Cancel(c *gin.Context) {
	if err := cc.Capture.Cancel(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": services.StateIdle})
}

// GET /capture/state
func (cc *CaptureController) State(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Capture.Snapshot())
}

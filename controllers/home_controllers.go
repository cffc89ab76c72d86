package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-kitchen/services"
	"github.com/yeremiapane/restaurant-kitchen/utils"
	"gorm.io/gorm"
)

type HomeController struct {
	Summary *services.SummaryService
}

func NewHomeController(db *gorm.DB) *HomeController {
	return &HomeController{Summary: services.NewSummaryService(db)}
}

func (hc *HomeController) Index(c *gin.Context) {
	summary, err := hc.Summary.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Home", summary)
}

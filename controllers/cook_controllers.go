package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-kitchen/services"
	"github.com/yeremiapane/restaurant-kitchen/utils"
	"gorm.io/gorm"
)

type CookController struct {
	Service *services.CookService
}

func NewCookController(db *gorm.DB) *CookController {
	return &CookController{Service: services.NewCookService(db)}
}

// GetAllCooks lists cooks, optionally filtered by ?username=.
func (cc *CookController) GetAllCooks(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	list, err := cc.Service.List(c.Request.Context(), c.Query("username"), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All cooks", list)
}

func (cc *CookController) GetCookByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cook, err := cc.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cook detail", cook)
}

// CreateCook registers an account together with its cook profile.
func (cc *CookController) CreateCook(c *gin.Context) {
	var input services.CookCreateInput
	if !bindJSON(c, &input) {
		return
	}
	cook, err := cc.Service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.WithField("cook_id", cook.ID).Infof("New cook registered: %s", cook.User.Username)
	utils.RespondJSON(c, http.StatusCreated, "Cook created", cook)
}

// UpdateCookExperience changes years_of_experience only.
func (cc *CookController) UpdateCookExperience(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.CookExperienceInput
	if !bindJSON(c, &input) {
		return
	}
	cook, err := cc.Service.UpdateExperience(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cook updated", cook)
}

func (cc *CookController) DeleteCook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := cc.Service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cook deleted", gin.H{"cook_id": id})
}

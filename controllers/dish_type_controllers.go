package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-kitchen/services"
	"github.com/yeremiapane/restaurant-kitchen/utils"
	"gorm.io/gorm"
)

type DishTypeController struct {
	Service *services.DishTypeService
}

func NewDishTypeController(db *gorm.DB) *DishTypeController {
	return &DishTypeController{Service: services.NewDishTypeService(db)}
}

// GetAllDishTypes lists dish types, optionally filtered by ?name=.
func (dc *DishTypeController) GetAllDishTypes(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	list, err := dc.Service.List(c.Request.Context(), c.Query("name"), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish types", list)
}

func (dc *DishTypeController) GetDishTypeByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dishType, err := dc.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish type detail", dishType)
}

func (dc *DishTypeController) CreateDishType(c *gin.Context) {
	var input services.DishTypeInput
	if !bindJSON(c, &input) {
		return
	}
	dishType, err := dc.Service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Dish type created", dishType)
}

func (dc *DishTypeController) UpdateDishType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.DishTypeInput
	if !bindJSON(c, &input) {
		return
	}
	dishType, err := dc.Service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish type updated", dishType)
}

func (dc *DishTypeController) DeleteDishType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := dc.Service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish type deleted", gin.H{"dish_type_id": id})
}

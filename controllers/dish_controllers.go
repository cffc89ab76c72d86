package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-kitchen/middlewares"
	"github.com/yeremiapane/restaurant-kitchen/services"
	"github.com/yeremiapane/restaurant-kitchen/utils"
	"gorm.io/gorm"
)

type DishController struct {
	Service     *services.DishService
	Assignments *services.AssignmentService
}

func NewDishController(db *gorm.DB) *DishController {
	return &DishController{
		Service:     services.NewDishService(db),
		Assignments: services.NewAssignmentService(db),
	}
}

// GetAllDishes lists dishes with their dish type, optionally filtered by ?name=.
func (dc *DishController) GetAllDishes(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	list, err := dc.Service.List(c.Request.Context(), c.Query("name"), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of dishes", list)
}

func (dc *DishController) GetDishByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dish, err := dc.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish detail", dish)
}

func (dc *DishController) CreateDish(c *gin.Context) {
	var input services.DishInput
	if !bindJSON(c, &input) {
		return
	}
	dish, err := dc.Service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Dish created", dish)
}

func (dc *DishController) UpdateDish(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.DishInput
	if !bindJSON(c, &input) {
		return
	}
	dish, err := dc.Service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}

func (dc *DishController) DeleteDish(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := dc.Service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish deleted", gin.H{"dish_id": id})
}

// ToggleAssign assigns the calling cook to the dish, or unassigns if already assigned.
func (dc *DishController) ToggleAssign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	assignment, err := dc.Assignments.Toggle(c.Request.Context(), middlewares.CurrentUserID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Unassigned from dish"
	if assignment.Assigned {
		message = "Assigned to dish"
	}
	utils.RespondJSON(c, http.StatusOK, message, assignment)
}

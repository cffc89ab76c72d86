package services

import (
	"context"

	"github.com/yeremiapane/restaurant-kitchen/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Assignment is the membership state of one (cook, dish) pair after a toggle.
type Assignment struct {
	DishID   uint `json:"dish_id"`
	CookID   uint `json:"cook_id"`
	Assigned bool `json:"assigned"`
}

type AssignmentService struct {
	DB *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{DB: db}
}

// Toggle flips whether the caller's cook is assigned to the dish.
// Concurrent adds collapse into one row through the (dish_id, cook_id) key;
// concurrent removes delete at most that one row.
func (s *AssignmentService) Toggle(ctx context.Context, userID, dishID uint) (*Assignment, error) {
	var result Assignment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cook models.Cook
		if err := tx.Select("id").Where("user_id = ?", userID).First(&cook).Error; err != nil {
			return translateLookupError(err)
		}
		var dish models.Dish
		if err := tx.Select("id").First(&dish, dishID).Error; err != nil {
			return translateLookupError(err)
		}

		link := models.DishCook{DishID: dish.ID, CookID: cook.ID}
		result = Assignment{DishID: dish.ID, CookID: cook.ID}

		var count int64
		if err := tx.Model(&models.DishCook{}).Where(&link).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return tx.Where(&link).Delete(&models.DishCook{}).Error
		}

		result.Assigned = true
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
		return translateWriteError(err, "", "")
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

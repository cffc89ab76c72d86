package services

import (
	"context"

	"github.com/yeremiapane/restaurant-kitchen/models"
	"gorm.io/gorm"
)

type HomeSummary struct {
	NumCooks     int64 `json:"num_cooks"`
	NumDishes    int64 `json:"num_dishes"`
	NumDishTypes int64 `json:"num_dish_types"`
}

type SummaryService struct {
	DB *gorm.DB
}

func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{DB: db}
}

// Summary counts every table at call time.
func (s *SummaryService) Summary(ctx context.Context) (*HomeSummary, error) {
	var summary HomeSummary
	db := s.DB.WithContext(ctx)
	if err := db.Model(&models.Cook{}).Count(&summary.NumCooks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Dish{}).Count(&summary.NumDishes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.DishType{}).Count(&summary.NumDishTypes).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}

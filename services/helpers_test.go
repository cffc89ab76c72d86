package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-kitchen/database"
	"github.com/yeremiapane/restaurant-kitchen/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	return db
}

func intPtr(v int) *int {
	return &v
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newCookService(db *gorm.DB) *CookService {
	s := NewCookService(db)
	s.HashCost = bcrypt.MinCost
	return s
}

func createDishType(t *testing.T, db *gorm.DB, name string) *models.DishType {
	t.Helper()
	dishType, err := NewDishTypeService(db).Create(context.Background(), DishTypeInput{Name: name})
	require.NoError(t, err)
	return dishType
}

func createDish(t *testing.T, db *gorm.DB, name string, dishTypeID uint, cookIDs ...uint) *models.Dish {
	t.Helper()
	dish, err := NewDishService(db).Create(context.Background(), DishInput{
		Name:        name,
		Description: name + " description",
		Price:       price("9.99"),
		DishTypeID:  dishTypeID,
		CookIDs:     cookIDs,
	})
	require.NoError(t, err)
	return dish
}

func createCook(t *testing.T, db *gorm.DB, username string) *models.Cook {
	t.Helper()
	cook, err := newCookService(db).Create(context.Background(), CookCreateInput{
		Username:          username,
		Password1:         "correct-horse",
		Password2:         "correct-horse",
		FirstName:         "First",
		LastName:          "Last",
		YearsOfExperience: intPtr(3),
	})
	require.NoError(t, err)
	return cook
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr, fmt.Sprintf("expected ValidationError, got %v", err))
	return verr.Fields
}

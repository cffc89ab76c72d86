package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dish struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"price"`
	DishTypeID  uint            `gorm:"not null;index" json:"dish_type_id"`
	DishType    *DishType       `gorm:"foreignKey:DishTypeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"dish_type,omitempty"`
	Cooks       []Cook          `gorm:"many2many:dish_cooks;" json:"cooks,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// DishCook is one row of the association behind Dish.Cooks and Cook.Dishes.
// The composite primary key makes each (dish, cook) pair unique.
type DishCook struct {
	DishID uint `gorm:"primaryKey;autoIncrement:false" json:"dish_id"`
	CookID uint `gorm:"primaryKey;autoIncrement:false" json:"cook_id"`
}

func (DishCook) TableName() string {
	return "dish_cooks"
}

package models

import (
	"fmt"
	"time"
)

type Cook struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User              User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
	YearsOfExperience *int      `json:"years_of_experience"`
	Dishes            []Dish    `gorm:"many2many:dish_cooks;" json:"dishes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// String renders "username (first last)".
func (c Cook) String() string {
	return fmt.Sprintf("%s (%s %s)", c.User.Username, c.User.FirstName, c.User.LastName)
}

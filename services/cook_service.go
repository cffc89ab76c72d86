package services

import (
	"context"
	"errors"

	"github.com/yeremiapane/restaurant-kitchen/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const CookPageSize = 15

// CookCreateInput is the account creation form plus the cook's experience.
type CookCreateInput struct {
	Username          string `json:"username"`
	Password1         string `json:"password1"`
	Password2         string `json:"password2"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	YearsOfExperience *int   `json:"years_of_experience"`
}

type CookExperienceInput struct {
	YearsOfExperience *int `json:"years_of_experience"`
}

type CookService struct {
	DB       *gorm.DB
	HashCost int
}

func NewCookService(db *gorm.DB) *CookService {
	return &CookService{DB: db, HashCost: bcrypt.DefaultCost}
}

func (s *CookService) List(ctx context.Context, username string, page int) (*Page[models.Cook], error) {
	return Paginate[models.Cook](ctx, s.DB, ListOptions{
		PageSize: CookPageSize,
		Order:    "cooks.id ASC",
		Filter:   UsernameContains(username),
		Preloads: []string{"User"},
	}, page)
}

// Get loads the cook with assigned dishes and, for each dish, its cooks.
func (s *CookService) Get(ctx context.Context, id uint) (*models.Cook, error) {
	return FindByID[models.Cook](ctx, s.DB, id, "User", "Dishes", "Dishes.DishType", "Dishes.Cooks", "Dishes.Cooks.User")
}

// ForUser resolves the cook profile of an authenticated account.
func (s *CookService) ForUser(ctx context.Context, userID uint) (*models.Cook, error) {
	var cook models.Cook
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Dishes", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Dishes.DishType").
		Where("user_id = ?", userID).
		First(&cook).Error
	if err != nil {
		return nil, translateLookupError(err)
	}
	return &cook, nil
}

func (s *CookService) Create(ctx context.Context, in CookCreateInput) (*models.Cook, error) {
	errs := &ValidationError{}
	username := checkUsername(errs, in.Username)
	if username != "" {
		taken, err := s.usernameTaken(ctx, username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("username", msgDuplicateUsername)
		}
	}
	checkPasswords(errs, in.Password1, in.Password2)
	firstName := checkText(errs, "first_name", in.FirstName, false, personNameMaxLength)
	lastName := checkText(errs, "last_name", in.LastName, false, personNameMaxLength)
	checkExperience(errs, in.YearsOfExperience)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password1), s.hashCost())
	if err != nil {
		return nil, err
	}

	years := *in.YearsOfExperience
	cook := models.Cook{
		User: models.User{
			Username:  username,
			Password:  string(hashed),
			FirstName: firstName,
			LastName:  lastName,
		},
		YearsOfExperience: &years,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cook.User).Error; err != nil {
			return translateWriteError(err, "username", msgDuplicateUsername)
		}
		cook.UserID = cook.User.ID
		return translateWriteError(tx.Omit("User").Create(&cook).Error, "", "")
	})
	if err != nil {
		return nil, err
	}
	return &cook, nil
}

// UpdateExperience changes only years_of_experience, through the same bound check as creation.
func (s *CookService) UpdateExperience(ctx context.Context, id uint, in CookExperienceInput) (*models.Cook, error) {
	cook, err := FindByID[models.Cook](ctx, s.DB, id, "User")
	if err != nil {
		return nil, err
	}

	errs := &ValidationError{}
	checkExperience(errs, in.YearsOfExperience)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	years := *in.YearsOfExperience
	err = s.DB.WithContext(ctx).Model(cook).Update("years_of_experience", years).Error
	if err != nil {
		return nil, err
	}
	cook.YearsOfExperience = &years
	return cook, nil
}

// Delete removes the cook profile, its dish assignments and the account behind it.
func (s *CookService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cook models.Cook
		if err := tx.First(&cook, id).Error; err != nil {
			return translateLookupError(err)
		}
		if err := tx.Where("cook_id = ?", cook.ID).Delete(&models.DishCook{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&cook).Error; err != nil {
			return translateWriteError(err, "", "")
		}
		return translateWriteError(tx.Delete(&models.User{}, cook.UserID).Error, "", "")
	})
}

func (s *CookService) usernameTaken(ctx context.Context, username string) (bool, error) {
	var existing models.User
	err := s.DB.WithContext(ctx).Select("id").Where("username = ?", username).Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *CookService) hashCost() int {
	if s.HashCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.HashCost
}

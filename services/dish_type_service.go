package services

import (
	"context"
	"errors"

	"github.com/yeremiapane/restaurant-kitchen/models"
	"gorm.io/gorm"
)

const DishTypePageSize = 5

type DishTypeInput struct {
	Name string `json:"name"`
}

type DishTypeService struct {
	DB *gorm.DB
}

func NewDishTypeService(db *gorm.DB) *DishTypeService {
	return &DishTypeService{DB: db}
}

func (s *DishTypeService) List(ctx context.Context, name string, page int) (*Page[models.DishType], error) {
	return Paginate[models.DishType](ctx, s.DB, ListOptions{
		PageSize: DishTypePageSize,
		Order:    "name ASC",
		Filter:   ContainsFold("name", name),
	}, page)
}

func (s *DishTypeService) Get(ctx context.Context, id uint) (*models.DishType, error) {
	return FindByID[models.DishType](ctx, s.DB, id)
}

func (s *DishTypeService) Create(ctx context.Context, in DishTypeInput) (*models.DishType, error) {
	dishType := models.DishType{}
	if err := s.clean(ctx, &dishType, in); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&dishType).Error; err != nil {
		return nil, translateWriteError(err, "name", msgDuplicateDishType)
	}
	return &dishType, nil
}

func (s *DishTypeService) Update(ctx context.Context, id uint, in DishTypeInput) (*models.DishType, error) {
	dishType, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.clean(ctx, dishType, in); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(dishType).Error; err != nil {
		return nil, translateWriteError(err, "name", msgDuplicateDishType)
	}
	return dishType, nil
}

// Delete removes the dish type together with its dishes and their cook assignments.
func (s *DishTypeService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dishType models.DishType
		if err := tx.First(&dishType, id).Error; err != nil {
			return translateLookupError(err)
		}

		dishes := tx.Model(&models.Dish{}).Select("id").Where("dish_type_id = ?", id)
		if err := tx.Where("dish_id IN (?)", dishes).Delete(&models.DishCook{}).Error; err != nil {
			return err
		}
		if err := tx.Where("dish_type_id = ?", id).Delete(&models.Dish{}).Error; err != nil {
			return translateWriteError(err, "", "")
		}
		return translateWriteError(tx.Delete(&dishType).Error, "", "")
	})
}

func (s *DishTypeService) clean(ctx context.Context, dishType *models.DishType, in DishTypeInput) error {
	errs := &ValidationError{}
	name := checkText(errs, "name", in.Name, true, nameMaxLength)
	if name != "" {
		taken, err := nameTaken[models.DishType](ctx, s.DB, name, dishType.ID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("name", msgDuplicateDishType)
		}
	}
	if err := errs.OrNil(); err != nil {
		return err
	}
	dishType.Name = name
	return nil
}

// nameTaken reports whether another row of T already uses name (exact match).
func nameTaken[T any](ctx context.Context, db *gorm.DB, name string, exceptID uint) (bool, error) {
	var existing struct{ ID uint }
	err := db.WithContext(ctx).Model(new(T)).Select("id").Where("name = ?", name).Where("id <> ?", exceptID).Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

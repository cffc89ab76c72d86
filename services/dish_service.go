package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-kitchen/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DishPageSize = 15

type DishInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	DishTypeID  uint             `json:"dish_type_id"`
	CookIDs     []uint           `json:"cook_ids"`
}

type DishService struct {
	DB *gorm.DB
}

func NewDishService(db *gorm.DB) *DishService {
	return &DishService{DB: db}
}

func (s *DishService) List(ctx context.Context, name string, page int) (*Page[models.Dish], error) {
	return Paginate[models.Dish](ctx, s.DB, ListOptions{
		PageSize: DishPageSize,
		Order:    "name ASC",
		Filter:   ContainsFold("name", name),
		Preloads: []string{"DishType"},
	}, page)
}

func (s *DishService) Get(ctx context.Context, id uint) (*models.Dish, error) {
	return FindByID[models.Dish](ctx, s.DB, id, "DishType", "Cooks", "Cooks.User")
}

func (s *DishService) Create(ctx context.Context, in DishInput) (*models.Dish, error) {
	dish := models.Dish{}
	cookIDs, err := s.clean(ctx, &dish, in)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&dish).Error; err != nil {
			return translateWriteError(err, "name", msgDuplicateDish)
		}
		return setDishCooks(tx, dish.ID, cookIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, dish.ID)
}

func (s *DishService) Update(ctx context.Context, id uint, in DishInput) (*models.Dish, error) {
	dish, err := FindByID[models.Dish](ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	cookIDs, err := s.clean(ctx, dish, in)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(dish).Error; err != nil {
			return translateWriteError(err, "name", msgDuplicateDish)
		}
		return setDishCooks(tx, dish.ID, cookIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, dish.ID)
}

// Delete removes the dish and its cook assignments; cooks themselves are untouched.
func (s *DishService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dish models.Dish
		if err := tx.First(&dish, id).Error; err != nil {
			return translateLookupError(err)
		}
		if err := tx.Where("dish_id = ?", id).Delete(&models.DishCook{}).Error; err != nil {
			return err
		}
		return translateWriteError(tx.Delete(&dish).Error, "", "")
	})
}

// setDishCooks replaces the dish's cook set with cookIDs.
func setDishCooks(tx *gorm.DB, dishID uint, cookIDs []uint) error {
	if err := tx.Where("dish_id = ?", dishID).Delete(&models.DishCook{}).Error; err != nil {
		return err
	}
	if len(cookIDs) == 0 {
		return nil
	}
	rows := make([]models.DishCook, 0, len(cookIDs))
	for _, cookID := range cookIDs {
		rows = append(rows, models.DishCook{DishID: dishID, CookID: cookID})
	}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	return translateWriteError(err, "", "")
}

func (s *DishService) clean(ctx context.Context, dish *models.Dish, in DishInput) ([]uint, error) {
	errs := &ValidationError{}

	name := checkText(errs, "name", in.Name, true, nameMaxLength)
	if name != "" {
		taken, err := nameTaken[models.Dish](ctx, s.DB, name, dish.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("name", msgDuplicateDish)
		}
	}
	description := checkText(errs, "description", in.Description, true, descriptionMaxLength)
	checkPrice(errs, in.Price)

	if in.DishTypeID == 0 {
		errs.Add("dish_type_id", msgRequired)
	} else {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.DishType{}).Where("id = ?", in.DishTypeID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			errs.Add("dish_type_id", msgInvalidChoice)
		}
	}

	cookIDs := uniqueIDs(in.CookIDs)
	if len(cookIDs) > 0 {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.Cook{}).Where("id IN ?", cookIDs).Count(&count).Error; err != nil {
			return nil, err
		}
		if count != int64(len(cookIDs)) {
			errs.Add("cook_ids", msgInvalidChoice)
		}
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	dish.Name = name
	dish.Description = description
	dish.Price = *in.Price
	dish.DishTypeID = in.DishTypeID
	dish.DishType = nil
	dish.Cooks = nil
	return cookIDs, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

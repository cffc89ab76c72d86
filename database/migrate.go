package database

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/yeremiapane/restaurant-kitchen/models"
	"github.com/yeremiapane/restaurant-kitchen/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table owned by the service. dish_cooks is created
// through the many2many relation on Dish and Cook.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.DishType{},
		&models.Cook{},
		&models.Dish{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if utils.InfoLogger != nil {
		utils.InfoLogger.Println("AutoMigrate completed.")
	}
	return nil
}

var memorySeq atomic.Uint64

// OpenMemory opens a private in-memory sqlite database with the schema migrated.
// Each call gets its own database, so tests do not see each other's rows.
func OpenMemory(name string) (*gorm.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, memorySeq.Add(1))

	db, err := gorm.Open(SQLite(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-kitchen/config"
	"github.com/yeremiapane/restaurant-kitchen/controllers"
	"github.com/yeremiapane/restaurant-kitchen/middlewares"
	"github.com/yeremiapane/restaurant-kitchen/services"
	"gorm.io/gorm"
)

// SetupRouter wires every endpoint. A nil cfg uses open CORS and the default login limit.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	origins := []string{"*"}
	loginRate := 10
	if cfg != nil {
		origins = cfg.CORSOrigins
		loginRate = cfg.LoginRatePerMinute
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(origins))

	authCtrl := controllers.NewAuthController(db)
	homeCtrl := controllers.NewHomeController(db)
	dishTypeCtrl := controllers.NewDishTypeController(db)
	dishCtrl := controllers.NewDishController(db)
	cookCtrl := controllers.NewCookController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.POST("/login", middlewares.NewLoginRateLimiter(loginRate).RateLimit(), authCtrl.Login)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(services.NewAuthService(db)))

	auth.GET("/", homeCtrl.Index)
	auth.GET("/me", authCtrl.Profile)

	// DISH TYPES
	auth.GET("/dishtypes", dishTypeCtrl.GetAllDishTypes)
	auth.POST("/dishtypes", dishTypeCtrl.CreateDishType)
	auth.GET("/dishtypes/:id", dishTypeCtrl.GetDishTypeByID)
	auth.PUT("/dishtypes/:id", dishTypeCtrl.UpdateDishType)
	auth.DELETE("/dishtypes/:id", dishTypeCtrl.DeleteDishType)

	// DISHES
	auth.GET("/dishes", dishCtrl.GetAllDishes)
	auth.POST("/dishes", dishCtrl.CreateDish)
	auth.GET("/dishes/:id", dishCtrl.GetDishByID)
	auth.PUT("/dishes/:id", dishCtrl.UpdateDish)
	auth.DELETE("/dishes/:id", dishCtrl.DeleteDish)
	auth.POST("/dishes/:id/toggle-assign", dishCtrl.ToggleAssign)

	// COOKS
	auth.GET("/cooks", cookCtrl.GetAllCooks)
	auth.POST("/cooks", cookCtrl.CreateCook)
	auth.GET("/cooks/:id", cookCtrl.GetCookByID)
	auth.PUT("/cooks/:id", cookCtrl.UpdateCookExperience)
	auth.DELETE("/cooks/:id", cookCtrl.DeleteCook)

	return r
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-kitchen/middlewares"
	"github.com/yeremiapane/restaurant-kitchen/services"
	"github.com/yeremiapane/restaurant-kitchen/utils"
	"gorm.io/gorm"
)

type AuthController struct {
	Auth  *services.AuthService
	Cooks *services.CookService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		Auth:  services.NewAuthService(db),
		Cooks: services.NewCookService(db),
	}
}

// Login exchanges a username and password for a bearer token.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &input) {
		return
	}

	user, err := ac.Auth.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		utils.InfoLogger.WithField("username", input.Username).Info("login rejected")
		respondServiceError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.WithField("user_id", user.ID).Info("login successful")
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":    token,
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// Profile returns the caller's own cook record.
func (ac *AuthController) Profile(c *gin.Context) {
	cook, err := ac.Cooks.ForUser(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile", cook)
}

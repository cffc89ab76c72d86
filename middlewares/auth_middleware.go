package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-kitchen/services"
	"github.com/yeremiapane/restaurant-kitchen/utils"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// AccountChecker confirms that the account named by a token still exists.
type AccountChecker interface {
	UserExists(ctx context.Context, userID uint) (bool, error)
}

// AuthMiddleware lets a request through only with a valid bearer token
// whose account has not been deleted since it was issued.
func AuthMiddleware(accounts AccountChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, services.ErrUnauthorized)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, services.ErrUnauthorized)
			c.Abort()
			return
		}

		exists, err := accounts.UserExists(c.Request.Context(), claims.UserID)
		if err != nil {
			utils.ErrorLogger.Errorf("auth: account lookup for user %d: %v", claims.UserID, err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
			c.Abort()
			return
		}
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, services.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// CurrentUserID returns the authenticated account id, or 0 outside AuthMiddleware.
func CurrentUserID(c *gin.Context) uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-kitchen/middlewares"
	"github.com/yeremiapane/restaurant-kitchen/services"
	"github.com/yeremiapane/restaurant-kitchen/utils"
)

var errInternal = errors.New("internal server error")

// respondServiceError maps service errors onto HTTP statuses. Storage failures
// are logged and reported without their driver text.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	var ierr *services.IntegrityError

	switch {
	case errors.As(err, &verr):
		utils.RespondFieldErrors(c, http.StatusBadRequest, "validation failed", verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, services.ErrNotFound)
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondError(c, http.StatusUnauthorized, err)
	case errors.As(err, &ierr):
		logRequestError(c, err)
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
	default:
		logRequestError(c, err)
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
	}
}

func logRequestError(c *gin.Context, err error) {
	utils.ErrorLogger.WithField("request_id", c.GetString(middlewares.ContextRequestID)).
		Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
}

// parseID reads a positive numeric path parameter. Anything else cannot name a record.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusNotFound, services.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("malformed request body"))
		return false
	}
	return true
}

func parsePage(c *gin.Context) (int, bool) {
	page, err := services.ParsePage(c.Query("page"))
	if err != nil {
		respondServiceError(c, err)
		return 0, false
	}
	return page, true
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/mishabitos-api/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/logger"
)

var badRequestErrors = []error{
	domain.ErrHabitTitleEmpty,
	domain.ErrHabitTitleTooLong,
	domain.ErrHabitDescTooLong,
	domain.ErrHabitInvalidUserID,
	domain.ErrInvalidGoal,
	domain.ErrInvalidHabitType,
	domain.ErrCategoryTooLong,
	domain.ErrInvalidCompletion,
	domain.ErrInvalidState,
	domain.ErrNegativeValue,
	domain.ErrDateRequired,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
}

func handleError(c *gin.Context, err error) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrHabitNotFound) || errors.Is(err, domain.ErrCompletionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})

	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})

	case errors.Is(err, domain.ErrRateUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rate unavailable"})

	default:
		_ = c.Error(err)
		logger.Ctx(c.Request.Context()).Error("request failed",
			"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
	}
	return userID, ok
}

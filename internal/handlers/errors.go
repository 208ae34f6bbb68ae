package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joshua-takyi/gogols/internal/auth"
	"github.com/joshua-takyi/gogols/internal/booking"
	"github.com/joshua-takyi/gogols/internal/helpers"
	"github.com/joshua-takyi/gogols/internal/models"
	"github.com/joshua-takyi/gogols/internal/services"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var ve validator.ValidationErrors
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrSlotTaken),
		errors.Is(err, booking.ErrSlotUnavailable):
		return http.StatusConflict
	case booking.IsValidation(err),
		errors.As(err, &ve),
		errors.Is(err, booking.ErrUnknownSlot),
		errors.Is(err, booking.ErrDayOutOfMonth),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, models.ErrUnknownResource),
		errors.Is(err, models.ErrUnknownOption):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrBadCredentials), errors.Is(err, auth.ErrNotAdmin):
		return http.StatusUnauthorized
	case errors.Is(err, helpers.ErrUploadsDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the error envelope. Server errors are attached to the
// context for ErrorHandler to log and replaced by a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, models.ErrorResponse("Internal server error"))
		return
	}
	c.JSON(status, models.ErrorResponse(err.Error()))
}

func resourceParam(c *gin.Context) (models.Resource, bool) {
	r, err := models.ParseResource(c.Param("resource"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return "", false
	}
	return r, true
}

func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid ID format"))
		return uuid.Nil, false
	}
	return id, true
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"yen-network/internal/service"
)

// ServerErrorMessage is the body of every unexpected failure.
const ServerErrorMessage = "Something went wrong on the server. Please try again later."

// HandleServiceError maps a service error to its HTTP response.
func HandleServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationErrorResponse(c, verr.Messages)
	case errors.Is(err, service.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrIdeaNotFound),
		errors.Is(err, service.ErrConnectionNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrConnectionExists),
		errors.Is(err, service.ErrInvalidOperation):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConnectionResolved):
		ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, ServerErrorMessage)
	}
}

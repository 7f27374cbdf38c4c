package http

import (
	"errors"
	"net/http"

	"parcelgo/internal/core/domain/services"
	"parcelgo/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusForError maps a domain error to the HTTP status of the response.
// Unrecognized errors are treated as internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrSlotIsFull),
		errors.Is(err, services.ErrNoCourierAvailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(ctx echo.Context, err error) error {
	code := statusForError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"logistics/internal/generated/servers"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorContext tells fail how a missing or duplicate object is reported for
// one family of endpoints.
type errorContext struct {
	notFoundStatus int
	notFoundLabel  func(param string) string
}

var (
	// lookupErrors: GET /drivers/{id} and friends answer 404.
	lookupErrors = errorContext{notFoundStatus: http.StatusNotFound, notFoundLabel: entityLabel}

	// delayEventErrors: an unknown order or driver in the event body is a bad request.
	delayEventErrors = errorContext{notFoundStatus: http.StatusBadRequest, notFoundLabel: entityLabel}

	createErrors = errorContext{notFoundStatus: http.StatusBadRequest, notFoundLabel: entityLabel}

	// createOrderErrors: the only lookup is the assigned driver.
	createOrderErrors = errorContext{
		notFoundStatus: http.StatusBadRequest,
		notFoundLabel: func(param string) string {
			if param == "driver" {
				return "Assigned driver"
			}
			return entityLabel(param)
		},
	}
)

// fail maps an application error onto a status code and a {"detail": ...} body.
func (s *Server) fail(ctx echo.Context, err error, ec errorContext) error {
	var (
		notFound *errs.ObjectNotFoundError
		conflict *errs.ObjectAlreadyExistsError
	)

	switch {
	case errors.As(err, &notFound):
		return detail(ctx, ec.notFoundStatus,
			fmt.Sprintf("%s '%v' not found", ec.notFoundLabel(notFound.ParamName), notFound.ID))
	case errors.As(err, &conflict):
		return detail(ctx, http.StatusConflict,
			fmt.Sprintf("%s '%v' already exists", entityLabel(conflict.ParamName), conflict.ID))
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return detail(ctx, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		return detail(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func detail(ctx echo.Context, status int, msg string) error {
	return ctx.JSON(status, servers.Error{Detail: msg})
}

func entityLabel(param string) string {
	if param == "" {
		return "Object"
	}
	return strings.ToUpper(param[:1]) + param[1:]
}

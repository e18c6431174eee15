package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusFor maps an application error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNoStoreAvailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNoAgentAvailable):
		return http.StatusAccepted
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse writes err as servers.Error. Unclassified errors are passed on to the echo
// error handler, which logs them and answers 500 without leaking details.
func errorResponse(ctx echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		return err
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: err.Error()})
}

// requestValidator plugs go-playground/validator into echo's Context.Validate.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// bindAndValidate decodes the JSON body into body and validates its struct tags.
// Failures are returned as 400 echo.HTTPErrors.
func bindAndValidate(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := ctx.Validate(body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	return nil
}

// errorHandler renders framework errors (unknown routes, malformed parameters) as servers.Error.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		} else {
			logger.Error("unhandled request error", zap.Error(err), zap.String("path", ctx.Path()))
		}

		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(code)
			return
		}
		_ = ctx.JSON(code, servers.Error{Code: code, Message: message})
	}
}

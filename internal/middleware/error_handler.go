package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"splitledger_app_echo/internal/auth"
	"splitledger_app_echo/internal/ledger"
	"splitledger_app_echo/internal/services"
)

// CustomErrorHandler creates a JSON error handler for Echo. Domain
// errors coming out of the services and ledger packages are mapped onto
// stable status codes so handlers can return them unwrapped.
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "something went wrong"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		} else {
			message = http.StatusText(code)
		}

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrExpenseNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		code = http.StatusNotFound
		message = err.Error()

	case errors.Is(err, ledger.ErrInvalidSplitType),
		errors.Is(err, ledger.ErrNoParticipants),
		errors.Is(err, ledger.ErrNonPositiveAmount),
		errors.Is(err, ledger.ErrZeroShareTotal),
		errors.Is(err, services.ErrInvalidExpenseAction):
		code = http.StatusBadRequest
		message = err.Error()

	case errors.Is(err, ledger.ErrUnbalancedLedger):
		code = http.StatusUnprocessableEntity
		message = err.Error()

	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, auth.ErrEmailExists):
		code = http.StatusConflict
		message = err.Error()

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		code = http.StatusUnauthorized
		message = err.Error()

	case errors.Is(err, auth.ErrWeakPassword):
		code = http.StatusBadRequest
		message = err.Error()

	case errors.Is(err, services.ErrNotGroupMember):
		code = http.StatusForbidden
		message = err.Error()
	}

	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	if sendErr := c.JSON(code, map[string]string{"error": message}); sendErr != nil {
		c.Logger().Error(sendErr)
	}
}

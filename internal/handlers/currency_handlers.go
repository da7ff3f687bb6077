package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"splitledger_app_echo/internal/services"
)

type CurrencyHandler struct {
	currency *services.CurrencyService
}

func NewCurrencyHandler(currency *services.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currency: currency}
}

// Convert handles GET /convert?amount=&from=&to=
func (h *CurrencyHandler) Convert(c echo.Context) error {
	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if from == "" || to == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "from and to are required")
	}

	amount, err := decimal.NewFromString(c.QueryParam("amount"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
	}
	if !amount.IsPositive() {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}

	converted, err := h.currency.Convert(c.Request().Context(), amount, from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "currency conversion failed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"amount":    amount,
		"from":      from,
		"to":        to,
		"converted": converted,
	})
}

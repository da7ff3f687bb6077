package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"splitledger_app_echo/internal/services"
)

type ExpenseHandler struct {
	expenses *services.ExpenseService
}

func NewExpenseHandler(expenses *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PayerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "payer_id is required")
	}

	detail, err := h.expenses.CreateExpense(c.Request().Context(), services.CreateExpenseInput{
		Amount:       req.Amount,
		Currency:     req.Currency,
		Description:  req.Description,
		GroupID:      req.GroupID,
		PayerID:      req.PayerID,
		SplitType:    req.SplitType,
		Participants: toParticipants(req.Participants),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, detail)
}

// GetExpense handles GET /expenses/:expenseId
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	expenseID, err := paramID(c, "expenseId")
	if err != nil {
		return err
	}
	detail, err := h.expenses.GetExpenseByID(c.Request().Context(), expenseID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateExpenseSplits handles PUT /expenses/:expenseId/splits
func (h *ExpenseHandler) UpdateExpenseSplits(c echo.Context) error {
	expenseID, err := paramID(c, "expenseId")
	if err != nil {
		return err
	}

	var req UpdateSplitsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	detail, err := h.expenses.UpdateExpenseSplits(c.Request().Context(), expenseID, req.SplitType, toParticipants(req.Participants))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"splitledger_app_echo/internal/auth"
	"splitledger_app_echo/internal/services"
)

type UserHandler struct {
	users    *services.UserService
	expenses *services.ExpenseService
	groups   *services.GroupService
	balances *services.BalanceService
}

func NewUserHandler(users *services.UserService, expenses *services.ExpenseService, groups *services.GroupService, balances *services.BalanceService) *UserHandler {
	return &UserHandler{users: users, expenses: expenses, groups: groups, balances: balances}
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and email are required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.Request().Context(), req.Name, req.Email, hash)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.GetAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListUserExpenses handles GET /users/:id/expenses
func (h *UserHandler) ListUserExpenses(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.users.GetUserByID(c.Request().Context(), userID); err != nil {
		return err
	}
	expenses, err := h.expenses.GetExpensesForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expenses)
}

// ListUserGroups handles GET /users/:id/groups
func (h *UserHandler) ListUserGroups(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.users.GetUserByID(c.Request().Context(), userID); err != nil {
		return err
	}
	groups, err := h.groups.GetGroupsForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

// GetUserBalance handles GET /users/:id/balance
func (h *UserHandler) GetUserBalance(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	summary, err := h.balances.UserBalance(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"splitledger_app_echo/internal/models"
	"splitledger_app_echo/internal/services"
)

type GroupHandler struct {
	groups   *services.GroupService
	expenses *services.ExpenseService
	balances *services.BalanceService
}

func NewGroupHandler(groups *services.GroupService, expenses *services.ExpenseService, balances *services.BalanceService) *GroupHandler {
	return &GroupHandler{groups: groups, expenses: expenses, balances: balances}
}

// CreateGroup handles POST /groups
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	var req CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	group, err := h.groups.CreateGroup(c.Request().Context(), req.Name, req.Currency, req.UserIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, group)
}

// GetGroup handles GET /groups/:groupId
func (h *GroupHandler) GetGroup(c echo.Context) error {
	groupID, err := paramID(c, "groupId")
	if err != nil {
		return err
	}
	group, err := h.groups.GetGroupByID(c.Request().Context(), groupID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, group)
}

// AddUsers handles POST /groups/:groupId/users
func (h *GroupHandler) AddUsers(c echo.Context) error {
	groupID, err := paramID(c, "groupId")
	if err != nil {
		return err
	}

	var req AddGroupUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.UserIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_ids is required")
	}

	group, err := h.groups.AddUsersToGroup(c.Request().Context(), groupID, req.UserIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, group)
}

// ListExpenses handles GET /groups/:groupId/expenses
func (h *GroupHandler) ListExpenses(c echo.Context) error {
	groupID, err := paramID(c, "groupId")
	if err != nil {
		return err
	}
	expenses, err := h.groups.GetExpensesForGroup(c.Request().Context(), groupID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expenses)
}

// ModifyExpenses handles POST /groups/:groupId/expenses, dispatching on
// the request's action field.
func (h *GroupHandler) ModifyExpenses(c echo.Context) error {
	groupID, err := paramID(c, "groupId")
	if err != nil {
		return err
	}

	var req GroupExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	detail, err := h.expenses.GroupExpenseAction(c.Request().Context(), groupID, services.GroupExpenseActionInput{
		Action:       services.ExpenseAction(req.Action),
		ExpenseID:    req.ExpenseID,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Description:  req.Description,
		PayerID:      req.PayerID,
		SplitType:    req.SplitType,
		Participants: toParticipants(req.Participants),
	})
	if err != nil {
		return err
	}
	if detail == nil {
		return c.JSON(http.StatusOK, map[string]string{"status": "removed"})
	}
	code := http.StatusOK
	if services.ExpenseAction(req.Action) == services.ExpenseActionAdd {
		code = http.StatusCreated
	}
	return c.JSON(code, detail)
}

// GetBalances handles GET /groups/:groupId/balances
func (h *GroupHandler) GetBalances(c echo.Context) error {
	groupID, err := paramID(c, "groupId")
	if err != nil {
		return err
	}
	balances, err := h.balances.GroupBalances(c.Request().Context(), groupID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balances)
}

// GetSettlementPlan handles GET /groups/:groupId/settlements
func (h *GroupHandler) GetSettlementPlan(c echo.Context) error {
	groupID, err := paramID(c, "groupId")
	if err != nil {
		return err
	}
	plan, err := h.balances.GroupSettlementPlan(c.Request().Context(), groupID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// RecordSettlement handles POST /groups/:groupId/settlements
func (h *GroupHandler) RecordSettlement(c echo.Context) error {
	groupID, err := paramID(c, "groupId")
	if err != nil {
		return err
	}

	var req RecordSettlementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.FromUserID == 0 || req.ToUserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "from_user_id and to_user_id are required")
	}
	if !req.Amount.IsPositive() {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}

	settlement := &models.Settlement{
		GroupID:    groupID,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		Note:       req.Note,
	}
	if err := h.groups.RecordSettlement(c.Request().Context(), settlement); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, settlement)
}

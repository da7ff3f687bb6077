package handlers

import (
	"github.com/shopspring/decimal"

	"splitledger_app_echo/internal/ledger"
	"splitledger_app_echo/internal/services"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ParticipantRequest is one participant entry in an expense request.
// Which numeric field matters depends on the split type.
type ParticipantRequest struct {
	UserID     uint            `json:"user_id"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Percentage decimal.Decimal `json:"percentage"`
	Shares     decimal.Decimal `json:"shares"`
}

// CreateExpenseRequest is the body of POST /expenses. GroupID zero
// records an individual expense.
type CreateExpenseRequest struct {
	Amount       decimal.Decimal      `json:"amount"`
	Currency     string               `json:"currency"`
	Description  string               `json:"description"`
	GroupID      uint                 `json:"group_id"`
	PayerID      uint                 `json:"payer_id"`
	SplitType    ledger.SplitType     `json:"split_type"`
	Participants []ParticipantRequest `json:"participants"`
}

// UpdateSplitsRequest is the body of PUT /expenses/:expenseId/splits.
type UpdateSplitsRequest struct {
	SplitType    ledger.SplitType     `json:"split_type"`
	Participants []ParticipantRequest `json:"participants"`
}

// CreateGroupRequest is the body of POST /groups.
type CreateGroupRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	UserIDs  []uint `json:"user_ids"`
}

// AddGroupUsersRequest is the body of POST /groups/:groupId/users.
type AddGroupUsersRequest struct {
	UserIDs []uint `json:"user_ids"`
}

// GroupExpenseRequest is the body of POST /groups/:groupId/expenses.
// Action selects add, update or remove.
type GroupExpenseRequest struct {
	Action       string               `json:"action"`
	ExpenseID    uint                 `json:"expense_id"`
	Amount       decimal.Decimal      `json:"amount"`
	Currency     string               `json:"currency"`
	Description  string               `json:"description"`
	PayerID      uint                 `json:"payer_id"`
	SplitType    ledger.SplitType     `json:"split_type"`
	Participants []ParticipantRequest `json:"participants"`
}

// RecordSettlementRequest is the body of POST /groups/:groupId/settlements.
type RecordSettlementRequest struct {
	FromUserID uint            `json:"from_user_id"`
	ToUserID   uint            `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
}

func toParticipants(reqs []ParticipantRequest) []services.ParticipantInput {
	out := make([]services.ParticipantInput, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, services.ParticipantInput{
			UserID:     r.UserID,
			AmountPaid: r.AmountPaid,
			Percentage: r.Percentage,
			Shares:     r.Shares,
		})
	}
	return out
}

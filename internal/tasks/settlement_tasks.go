package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"splitledger_app_echo/internal/models"
	"splitledger_app_echo/internal/services"
)

// SettlementReminderArgs defines the arguments for a settlement reminder task
type SettlementReminderArgs struct {
	GroupID uint `json:"group_id"`
}

// SettlementReminderTaskDef encapsulates the settlement reminder task.
// It recomputes the group's simplified settlement plan on every run and
// emails each member who still owes money.
type SettlementReminderTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *SettlementReminderTaskDef) TaskID() string {
	return "settlement_reminder"
}

// CreateTask builds a recurring ScheduledTask record for this task
func (t *SettlementReminderTaskDef) CreateTask(args SettlementReminderArgs, due time.Time, recurringInterval *string) (*models.ScheduledTask, error) {
	taskType := models.ScheduledTaskTypeOneTime
	if recurringInterval != nil {
		taskType = models.ScheduledTaskTypeRecurring
	}
	return BuildScheduledTask(t.TaskID(), args, due, recurringInterval, taskType, 3)
}

// HandleExecution computes who still owes whom and mails the debtors
func (t *SettlementReminderTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	var args SettlementReminderArgs
	if err := parseArgs(task, &args); err != nil {
		return nil, err
	}
	if args.GroupID == 0 {
		return nil, fmt.Errorf("group_id is missing")
	}

	var group models.Group
	if err := db.WithContext(ctx).Preload("Members").First(&group, args.GroupID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch group %d: %w", args.GroupID, err)
	}

	plan, err := services.NewBalanceService(db).GroupSettlementPlan(ctx, args.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute settlement plan: %w", err)
	}
	if len(plan) == 0 {
		log.Printf("[Task: settlement_reminder] Group %q is settled, nothing to send", group.Name)
		return map[string]interface{}{"status": "settled", "reminders": 0}, nil
	}

	membersByID := make(map[uint]models.User, len(group.Members))
	for _, member := range group.Members {
		membersByID[member.ID] = member
	}

	emailService := services.NewEmailService()
	sent := 0
	var failures []string
	for _, transfer := range plan {
		debtor, ok := membersByID[transfer.FromUserID]
		if !ok || debtor.Email == "" {
			failures = append(failures, fmt.Sprintf("user %d: no email on file", transfer.FromUserID))
			continue
		}
		creditorName := fmt.Sprintf("user %d", transfer.ToUserID)
		if creditor, ok := membersByID[transfer.ToUserID]; ok {
			creditorName = creditor.Name
		}

		subject := fmt.Sprintf("Settle up reminder: %s", group.Name)
		body := fmt.Sprintf("Hi %s,\n\nYou still owe %s %s %s in the group %q.\n",
			debtor.Name, creditorName, transfer.Amount.StringFixed(2), group.Currency, group.Name)

		if err := emailService.SendEmail([]string{debtor.Email}, subject, body); err != nil {
			log.Printf("[Task: settlement_reminder] Failed to mail %s: %v", debtor.Email, err)
			failures = append(failures, fmt.Sprintf("%s: %v", debtor.Email, err))
			continue
		}
		sent++
	}

	result := map[string]interface{}{
		"status":    "success",
		"reminders": sent,
		"transfers": len(plan),
	}
	if len(failures) > 0 {
		result["errors"] = failures
		if sent == 0 {
			return result, fmt.Errorf("failed to deliver all %d reminders", len(failures))
		}
	}
	return result, nil
}

// SettlementReminderTask is the singleton instance of SettlementReminderTaskDef
var SettlementReminderTask = &SettlementReminderTaskDef{}

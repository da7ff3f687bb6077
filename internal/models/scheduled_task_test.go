package models

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestNextDue(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)

	tests := []struct {
		name     string
		task     ScheduledTask
		wantSame bool // next due equals current due
	}{
		{
			name:     "one-shot keeps its due date",
			task:     ScheduledTask{TaskType: ScheduledTaskTypeOneTime, Due: past},
			wantSame: true,
		},
		{
			name:     "recurring without rule keeps its due date",
			task:     ScheduledTask{TaskType: ScheduledTaskTypeRecurring, Due: past},
			wantSame: true,
		},
		{
			name: "recurring with invalid rule keeps its due date",
			task: ScheduledTask{
				TaskType:          ScheduledTaskTypeRecurring,
				Due:               past,
				RecurringInterval: strPtr("not-an-rrule"),
			},
			wantSame: true,
		},
		{
			name: "recurring daily rule advances past now",
			task: ScheduledTask{
				TaskType:          ScheduledTaskTypeRecurring,
				Due:               past,
				RecurringInterval: strPtr("FREQ=DAILY"),
			},
			wantSame: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := tt.task.NextDue()
			if tt.wantSame {
				if !next.Equal(tt.task.Due) {
					t.Errorf("got %v, want unchanged due %v", next, tt.task.Due)
				}
				return
			}
			if !next.After(time.Now().Add(-time.Minute)) {
				t.Errorf("got %v, want an occurrence at or after now", next)
			}
			if !next.After(tt.task.Due) {
				t.Errorf("got %v, want later than the stale due %v", next, tt.task.Due)
			}
		})
	}
}

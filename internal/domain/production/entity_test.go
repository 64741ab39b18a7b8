// internal/domain/production/entity_test.go
package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to DayStatus
		want     bool
	}{
		{DayStatusDraft, DayStatusPublished, true},
		{DayStatusDraft, DayStatusClosed, false},
		{DayStatusPublished, DayStatusClosed, true},
		{DayStatusPublished, DayStatusDraft, false},
		{DayStatusClosed, DayStatusPublished, false},
		{DayStatusClosed, DayStatusDraft, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestBatchStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to BatchStatus
		want     bool
	}{
		{BatchStatusPending, BatchStatusInProgress, true},
		{BatchStatusPending, BatchStatusCompleted, false},
		{BatchStatusPending, BatchStatusQAFailed, false},
		{BatchStatusInProgress, BatchStatusCompleted, true},
		{BatchStatusInProgress, BatchStatusQAFailed, true},
		{BatchStatusInProgress, BatchStatusPending, false},
		{BatchStatusCompleted, BatchStatusQAFailed, false},
		{BatchStatusQAFailed, BatchStatusInProgress, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

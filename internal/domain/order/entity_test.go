// internal/domain/order/entity_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusPlanned, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusInProduction, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPlanned, OrderStatusInProduction, true},
		{OrderStatusPlanned, OrderStatusCancelled, true},
		{OrderStatusPlanned, OrderStatusPending, false},
		{OrderStatusInProduction, OrderStatusCompleted, true},
		{OrderStatusInProduction, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusDelivered, true},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCompleted, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrderCancelAndDeleteGuards(t *testing.T) {
	cancellable := map[OrderStatus]bool{
		OrderStatusPending:      true,
		OrderStatusPlanned:      true,
		OrderStatusInProduction: false,
		OrderStatusCompleted:    false,
		OrderStatusDelivered:    false,
		OrderStatusCancelled:    false,
	}
	for status, want := range cancellable {
		o := Order{Status: status}
		assert.Equal(t, want, o.CanBeCancelled(), string(status))
		assert.Equal(t, status == OrderStatusPending, o.CanBeDeleted(), string(status))
	}
}

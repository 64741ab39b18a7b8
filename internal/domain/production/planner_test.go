// internal/domain/production/planner_test.go
package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanBatches(t *testing.T) {
	tests := []struct {
		name       string
		totalUnits int
		capacity   int
		want       []int
	}{
		{"remainder in last batch", 65, 20, []int{20, 20, 20, 5}},
		{"exact multiple", 40, 20, []int{20, 20}},
		{"single partial batch", 1, 20, []int{1}},
		{"single full batch", 20, 20, []int{20}},
		{"capacity larger than total", 7, 50, []int{7}},
		{"zero total", 0, 20, nil},
		{"negative total", -5, 20, nil},
		{"zero capacity", 40, 0, nil},
		{"negative capacity", 40, -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanBatches(tt.totalUnits, tt.capacity))
		})
	}
}

func TestPlanBatchesPartition(t *testing.T) {
	// every plan must sum to the total, with only the last batch partial
	cases := []struct{ total, capacity int }{
		{1, 1}, {9, 4}, {100, 7}, {100, 100}, {101, 100}, {500, 13},
	}

	for _, c := range cases {
		batches := PlanBatches(c.total, c.capacity)
		require.NotEmpty(t, batches)

		sum := 0
		for i, b := range batches {
			assert.Greater(t, b, 0)
			if i < len(batches)-1 {
				assert.Equal(t, c.capacity, b)
			} else {
				assert.LessOrEqual(t, b, c.capacity)
			}
			sum += b
		}
		assert.Equal(t, c.total, sum, "total=%d capacity=%d", c.total, c.capacity)
	}
}

func TestPlanBatchesIdempotent(t *testing.T) {
	first := PlanBatches(65, 20)
	second := PlanBatches(65, 20)
	assert.Equal(t, first, second)
}

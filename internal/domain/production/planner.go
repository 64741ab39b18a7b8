// internal/domain/production/planner.go
package production

// PlanBatches partitions the total ordered units of a product into
// production batches bounded by the machine capacity. Every batch except
// possibly the last is a full batch; the last carries the remainder and is
// never rounded up to capacity (65 units at capacity 20 -> [20 20 20 5]).
// Non-positive totals or capacities yield no batches.
func PlanBatches(totalUnits, batchCapacity int) []int {
	if totalUnits <= 0 || batchCapacity <= 0 {
		return nil
	}

	batches := make([]int, 0, (totalUnits+batchCapacity-1)/batchCapacity)
	remaining := totalUnits
	for remaining > 0 {
		size := batchCapacity
		if remaining < size {
			size = remaining
		}
		batches = append(batches, size)
		remaining -= size
	}
	return batches
}

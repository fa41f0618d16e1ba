package blocks

// orderStep is the gap left between appended content blocks. Halving the gap
// on between-inserts gives roughly fifty same-spot inserts before adjacent
// float64 order values collide; no rebalancing pass runs.
const orderStep = 1000

// OrderBefore returns an order value sorting immediately before index i of an
// ascending-sorted order list.
func OrderBefore(sorted []float64, i int) float64 {
	if len(sorted) == 0 {
		return orderStep
	}
	if i <= 0 {
		return sorted[0] / 2
	}
	return (sorted[i-1] + sorted[i]) / 2
}

// OrderAfter returns an order value sorting immediately after index i of an
// ascending-sorted order list.
func OrderAfter(sorted []float64, i int) float64 {
	if len(sorted) == 0 {
		return orderStep
	}
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1] + orderStep
	}
	return (sorted[i] + sorted[i+1]) / 2
}

// OrderAppend returns an order value sorting after every existing entry.
func OrderAppend(sorted []float64) float64 {
	if len(sorted) == 0 {
		return orderStep
	}
	return sorted[len(sorted)-1] + orderStep
}

package blocks

// Merge applies a delta onto a base block set and returns the resulting live
// set. Base blocks whose id appears in the delta are replaced; delta blocks
// that are tombstoned drop out entirely. Neither input is mutated, and
// applying the same delta twice yields the same result as applying it once.
//
// Base order is preserved; surviving delta blocks are appended in delta order.
func Merge(base, delta []Block) []Block {
	if len(delta) == 0 {
		return append([]Block(nil), base...)
	}

	updated := make(map[string]struct{}, len(delta))
	for _, b := range delta {
		updated[b.ID] = struct{}{}
	}

	merged := make([]Block, 0, len(base)+len(delta))
	for _, b := range base {
		if _, replaced := updated[b.ID]; !replaced {
			merged = append(merged, b)
		}
	}
	for _, b := range delta {
		if b.IsLive() {
			merged = append(merged, b)
		}
	}
	return merged
}

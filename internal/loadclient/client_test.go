package loadclient

import "testing"

// Quantity must cycle 1..100 without ever reproducing the original
// compounding-increment defect (`quantity += ++quantity % 100`), which
// spec.md §9 explicitly calls out as not to be carried forward.
func TestQuantityCyclesWithoutCompoundIncrement(t *testing.T) {
	qty := int32(1)
	seen := make(map[int32]bool)
	for i := 0; i < 250; i++ {
		if qty < 1 || qty > 100 {
			t.Fatalf("qty = %d out of [1,100] range at step %d", qty, i)
		}
		seen[qty] = true
		qty = qty%100 + 1
	}
	if len(seen) != 100 {
		t.Errorf("visited %d distinct quantities, want 100", len(seen))
	}
}

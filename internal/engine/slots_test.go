package engine

import "testing"

// TestIsValidSlotIndex checks the 1..11 bound.
func TestIsValidSlotIndex(t *testing.T) {
	for i := 1; i <= SlotCount; i++ {
		if !IsValidSlotIndex(i) {
			t.Fatalf("slot %d should be valid", i)
		}
	}
	for _, idx := range []int{0, -1, 12, 100} {
		if IsValidSlotIndex(idx) {
			t.Fatalf("slot %d should be invalid", idx)
		}
	}
}

// TestParseAssignmentsRejectsBadIndex ensures out-of-range indexes fail
// before any scoring.
func TestParseAssignmentsRejectsBadIndex(t *testing.T) {
	_, err := ParseAssignments(map[int]string{12: "p1"})
	if err == nil {
		t.Fatal("expected error for slot 12")
	}
	_, err = ParseAssignments(map[int]string{0: "p1"})
	if err == nil {
		t.Fatal("expected error for slot 0")
	}
}

// TestResolveAssignments ensures a sparse pick resolves to all 11 explicit
// slots with no auto-filling.
func TestResolveAssignments(t *testing.T) {
	sparse := Assignments{1: "p1", 5: "p5", 11: "p11"}
	resolved := ResolveAssignments(sparse)

	if len(resolved) != SlotCount {
		t.Fatalf("resolved map has %d slots, want %d", len(resolved), SlotCount)
	}
	if resolved.PlayerAt(1) != "p1" || resolved.PlayerAt(5) != "p5" || resolved.PlayerAt(11) != "p11" {
		t.Fatalf("filled slots lost: %v", resolved)
	}
	for _, slot := range []SlotIndex{2, 3, 4, 6, 7, 8, 9, 10} {
		if resolved.IsFilled(slot) {
			t.Fatalf("slot %d should be explicitly empty", slot)
		}
	}

	if got := resolved.CountFilled(); got != 3 {
		t.Fatalf("CountFilled = %d, want 3", got)
	}
	if got := resolved.CountEmpty(); got != 8 {
		t.Fatalf("CountEmpty = %d, want 8", got)
	}

	filled := resolved.FilledSlots()
	if len(filled) != 3 || filled[0] != 1 || filled[1] != 5 || filled[2] != 11 {
		t.Fatalf("FilledSlots = %v, want [1 5 11]", filled)
	}
	if got := len(resolved.EmptySlots()); got != 8 {
		t.Fatalf("EmptySlots has %d entries, want 8", got)
	}
}

// TestResolveAssignmentsEmpty ensures an empty pick resolves to 11 explicit
// empty slots.
func TestResolveAssignmentsEmpty(t *testing.T) {
	resolved := ResolveAssignments(Assignments{})
	if resolved.CountFilled() != 0 || resolved.CountEmpty() != SlotCount {
		t.Fatalf("empty pick resolved to %v", resolved)
	}

	empty := NewEmptyAssignments()
	if len(empty) != SlotCount || empty.CountFilled() != 0 {
		t.Fatalf("NewEmptyAssignments = %v", empty)
	}
}

// TestResolvedAssignmentsClone ensures clones are independent.
func TestResolvedAssignmentsClone(t *testing.T) {
	resolved := ResolveAssignments(Assignments{3: "p3"})
	clone := resolved.Clone()
	clone[3] = "other"
	if resolved.PlayerAt(3) != "p3" {
		t.Fatal("mutating the clone changed the original")
	}
}

package engine

import "fmt"

// SlotIndex is one of the 11 ordered positions in a team pick. Valid values
// are 1..11; the index is semantically meaningful because it drives the
// slot's multiplier.
type SlotIndex int

// IsValidSlotIndex reports whether n is an integer in [1, SlotCount].
func IsValidSlotIndex(n int) bool {
	return n >= 1 && n <= SlotCount
}

// Valid reports whether the index is inside the 1..11 range.
func (s SlotIndex) Valid() bool {
	return IsValidSlotIndex(int(s))
}

// Assignments is a sparse team pick: only the slots the participant actually
// filled carry a player ID.
type Assignments map[SlotIndex]string

// ResolvedAssignments is a fully explicit team pick: all 11 slots are
// present, each holding either a player ID or the empty string for an
// explicitly empty slot. No slot is ever auto-filled.
type ResolvedAssignments map[SlotIndex]string

// ParseAssignments validates a raw slot->player map from storage or a client
// and converts it to typed sparse assignments. Empty player IDs are treated
// as unfilled slots.
func ParseAssignments(raw map[int]string) (Assignments, error) {
	out := make(Assignments, len(raw))
	for idx, playerID := range raw {
		if !IsValidSlotIndex(idx) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSlotIndex, idx)
		}
		if playerID == "" {
			continue
		}
		out[SlotIndex(idx)] = playerID
	}
	return out, nil
}

// NewEmptyAssignments returns a resolved map with all 11 slots explicitly
// empty.
func NewEmptyAssignments() ResolvedAssignments {
	out := make(ResolvedAssignments, SlotCount)
	for i := 1; i <= SlotCount; i++ {
		out[SlotIndex(i)] = ""
	}
	return out
}

// ResolveAssignments normalizes a sparse pick into a fully explicit one:
// every slot missing from the input resolves to explicitly empty. Pure and
// order-preserving.
func ResolveAssignments(sparse Assignments) ResolvedAssignments {
	out := NewEmptyAssignments()
	for slot, playerID := range sparse {
		if slot.Valid() {
			out[slot] = playerID
		}
	}
	return out
}

// FilledSlots returns the slots holding a player, in ascending index order.
func (r ResolvedAssignments) FilledSlots() []SlotIndex {
	var out []SlotIndex
	for i := 1; i <= SlotCount; i++ {
		if r[SlotIndex(i)] != "" {
			out = append(out, SlotIndex(i))
		}
	}
	return out
}

// EmptySlots returns the explicitly empty slots, in ascending index order.
func (r ResolvedAssignments) EmptySlots() []SlotIndex {
	var out []SlotIndex
	for i := 1; i <= SlotCount; i++ {
		if r[SlotIndex(i)] == "" {
			out = append(out, SlotIndex(i))
		}
	}
	return out
}

// CountFilled returns how many slots hold a player.
func (r ResolvedAssignments) CountFilled() int {
	return len(r.FilledSlots())
}

// CountEmpty returns how many slots are explicitly empty.
func (r ResolvedAssignments) CountEmpty() int {
	return SlotCount - r.CountFilled()
}

// IsFilled reports whether the given slot holds a player.
func (r ResolvedAssignments) IsFilled(slot SlotIndex) bool {
	return r[slot] != ""
}

// PlayerAt returns the player occupying the slot, or "" if the slot is
// empty.
func (r ResolvedAssignments) PlayerAt(slot SlotIndex) string {
	return r[slot]
}

// Clone returns an independent copy of the resolved map.
func (r ResolvedAssignments) Clone() ResolvedAssignments {
	out := make(ResolvedAssignments, len(r))
	for slot, playerID := range r {
		out[slot] = playerID
	}
	return out
}

package engine

import "sort"

// SlotConflict describes one player occupying two or more slots. Slots lists
// every occupied index in ascending order; KeptSlot is the one that retains
// the player after resolution.
type SlotConflict struct {
	PlayerID string      `json:"player_id"`
	Slots    []SlotIndex `json:"slots"`
	KeptSlot SlotIndex   `json:"kept_slot"`
}

// DetectConflicts returns one SlotConflict per player appearing in two or
// more slots. The kept slot is always the lowest index: the participant's
// first assignment of a player is the one that counts.
func DetectConflicts(resolved ResolvedAssignments) []SlotConflict {
	occupied := make(map[string][]SlotIndex)
	for i := 1; i <= SlotCount; i++ {
		slot := SlotIndex(i)
		if playerID := resolved[slot]; playerID != "" {
			occupied[playerID] = append(occupied[playerID], slot)
		}
	}

	var conflicts []SlotConflict
	for playerID, slots := range occupied {
		if len(slots) < 2 {
			continue
		}
		conflicts = append(conflicts, SlotConflict{
			PlayerID: playerID,
			Slots:    slots,
			KeptSlot: slots[0],
		})
	}

	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].KeptSlot < conflicts[j].KeptSlot
	})
	return conflicts
}

// ResolveConflicts returns a new map in which every duplicated player keeps
// only its lowest-indexed slot; every higher-indexed occurrence is forced to
// empty. Idempotent: resolving a conflict-free map is a no-op.
func ResolveConflicts(resolved ResolvedAssignments) ResolvedAssignments {
	out := NewEmptyAssignments()
	seen := make(map[string]bool)
	for i := 1; i <= SlotCount; i++ {
		slot := SlotIndex(i)
		playerID := resolved[slot]
		if playerID == "" || seen[playerID] {
			continue
		}
		seen[playerID] = true
		out[slot] = playerID
	}
	return out
}

// IsConflictFree reports whether no player occupies more than one slot.
func IsConflictFree(resolved ResolvedAssignments) bool {
	return len(DetectConflicts(resolved)) == 0
}

package engine

import (
	"errors"
	"testing"

	"cricket-contest/internal/domain"
)

// TestSlotScore checks multiplier combination: exact fractional products,
// large multipliers, and the non-negative clamp.
func TestSlotScore(t *testing.T) {
	tcs := []struct {
		name       string
		base       int
		multiplier float64
		want       float64
	}{
		{"fractional multiplier exact", 100, 2.5, 250},
		{"large multiplier", 277, 100, 27700},
		{"zero multiplier", 150, 0, 0},
		{"zero base", 0, 3.5, 0},
		{"negative base clamped", -10, 2, 0},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := SlotScore(tc.base, tc.multiplier); got != tc.want {
				t.Fatalf("SlotScore(%d, %v) = %v, want %v", tc.base, tc.multiplier, got, tc.want)
			}
		})
	}
}

// TestScoreSlots ensures every slot appears in the output, empty slots and
// invalid-participation players contribute zero, and the total sums the
// final scores at full precision.
func TestScoreSlots(t *testing.T) {
	rules := testRules(t)

	stats := map[string]domain.PlayerMatchStats{
		// 10 + round(100) = 110 base.
		"batter": {PlayerID: "batter", RunsScored: 10, BallsFaced: 10},
		// Placeholder entry that never took part.
		"ghost": {PlayerID: "ghost"},
	}

	resolved := ResolveAssignments(Assignments{1: "batter", 2: "ghost", 3: "missing"})
	config := ResolveAdminConfig(AdminConfig{
		Multipliers: map[SlotIndex]float64{1: 2.5},
		Disabled:    map[SlotIndex]bool{},
	}, rules)

	result := ScoreSlots(resolved, config, stats, rules)
	if len(result.Slots) != SlotCount {
		t.Fatalf("result has %d slots, want %d", len(result.Slots), SlotCount)
	}

	first := result.Slots[0]
	if first.Slot != 1 || first.PlayerID != "batter" {
		t.Fatalf("slot 1 entry = %+v", first)
	}
	if first.BaseScore != 110 {
		t.Fatalf("slot 1 base score = %d, want 110", first.BaseScore)
	}
	if first.FinalScore != 275 {
		t.Fatalf("slot 1 final score = %v, want 275", first.FinalScore)
	}

	// Invalid participation scores as excluded, not zero-but-counted.
	if result.Slots[1].BaseScore != 0 || result.Slots[1].FinalScore != 0 {
		t.Fatalf("ghost slot scored: %+v", result.Slots[1])
	}
	if _, ok := result.Breakdowns["ghost"]; ok {
		t.Fatal("ghost should have no breakdown")
	}

	// A player without stats contributes zero regardless of multiplier.
	if result.Slots[2].FinalScore != 0 {
		t.Fatalf("missing-stats slot scored: %+v", result.Slots[2])
	}

	// Empty slots are retained with zero scores.
	for _, entry := range result.Slots[3:] {
		if entry.PlayerID != "" || entry.FinalScore != 0 {
			t.Fatalf("expected empty slot, got %+v", entry)
		}
	}

	if result.Total != 275 {
		t.Fatalf("total = %v, want 275", result.Total)
	}
	if _, ok := result.Breakdowns["batter"]; !ok {
		t.Fatal("batter breakdown missing from result")
	}
}

// TestScoreParticipantResolvesConflicts ensures the full pipeline keeps the
// lowest-indexed slot for a duplicated player.
func TestScoreParticipantResolvesConflicts(t *testing.T) {
	rules := testRules(t)

	stats := map[string]domain.PlayerMatchStats{
		"star": {PlayerID: "star", RunsScored: 20, BallsFaced: 10},
	}
	config := AdminConfig{
		Multipliers: map[SlotIndex]float64{1: 2.0, 5: 100},
		Disabled:    map[SlotIndex]bool{},
	}

	// star's base is 20 + round(200) = 220. The slot 5 copy loses despite
	// its huge multiplier; only slot 1 counts.
	result := ScoreParticipant(Assignments{1: "star", 5: "star"}, config, stats, rules)
	if result.Slots[0].FinalScore != 440 {
		t.Fatalf("slot 1 final = %v, want 440", result.Slots[0].FinalScore)
	}
	if result.Slots[4].PlayerID != "" || result.Slots[4].FinalScore != 0 {
		t.Fatalf("slot 5 should be emptied, got %+v", result.Slots[4])
	}
	if result.Total != 440 {
		t.Fatalf("total = %v, want 440", result.Total)
	}
}

// TestScoreParticipantStamped ensures the stamped pipeline carries the
// producing rule version and the exact same payload as the bare pipeline.
func TestScoreParticipantStamped(t *testing.T) {
	rules := testRules(t)

	stats := map[string]domain.PlayerMatchStats{
		"batter": {PlayerID: "batter", RunsScored: 10, BallsFaced: 10},
	}
	config := AdminConfig{
		Multipliers: map[SlotIndex]float64{},
		Disabled:    map[SlotIndex]bool{},
	}
	sparse := Assignments{1: "batter"}

	stamped := ScoreParticipantStamped(sparse, config, stats, rules)
	if stamped.Version != rules.Version {
		t.Fatalf("stamp version = %s, want %s", stamped.Version, rules.Version)
	}
	if err := stamped.AssertVersion("v1"); err != nil {
		t.Fatalf("AssertVersion(v1) returned error: %v", err)
	}
	if err := stamped.AssertVersion("v2"); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("AssertVersion(v2) error = %v, want %v", err, ErrVersionMismatch)
	}

	bare := ScoreParticipant(sparse, config, stats, rules)
	if stamped.Payload.Total != bare.Total {
		t.Fatalf("stamped total = %v, bare total = %v", stamped.Payload.Total, bare.Total)
	}
	if len(stamped.Payload.Slots) != len(bare.Slots) {
		t.Fatalf("stamped slots = %d, bare slots = %d", len(stamped.Payload.Slots), len(bare.Slots))
	}
}

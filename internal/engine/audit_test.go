package engine

import (
	"strings"
	"testing"
	"time"

	"cricket-contest/internal/domain"
)

func testAuditRecord(t *testing.T) AuditRecord {
	t.Helper()
	rules := testRules(t)

	inputs := AuditInputs{
		Stats: map[string]domain.PlayerMatchStats{
			"batter": {PlayerID: "batter", RunsScored: 50, BallsFaced: 30, Fours: 4, Sixes: 1},
			"bowler": {PlayerID: "bowler", WicketsTaken: 3, OversFull: 4, RunsConceded: 20},
		},
		Assignments: map[int]string{1: "batter", 2: "bowler"},
		Multipliers: map[int]float64{1: 2.0},
	}

	sparse, err := ParseAssignments(inputs.Assignments)
	if err != nil {
		t.Fatalf("ParseAssignments returned error: %v", err)
	}
	config, err := ParseAdminConfig(inputs.Multipliers, inputs.Disabled)
	if err != nil {
		t.Fatalf("ParseAdminConfig returned error: %v", err)
	}

	result := ScoreParticipant(sparse, config, inputs.Stats, rules)
	rec, err := NewAuditRecord("audit-1", "match-1", "alice", rules, inputs, result, time.Now())
	if err != nil {
		t.Fatalf("NewAuditRecord returned error: %v", err)
	}
	return rec
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	registry, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry returned error: %v", err)
	}
	return registry
}

// TestReplayUntampered ensures a freshly created record replays exactly.
func TestReplayUntampered(t *testing.T) {
	rec := testAuditRecord(t)

	replay, err := Replay(rec, testRegistry(t))
	if err != nil {
		t.Fatalf("Replay returned error: %v", err)
	}
	if !replay.OK {
		t.Fatalf("replay failed: %+v", replay.Diffs)
	}
	if len(replay.Diffs) != 0 {
		t.Fatalf("expected no diffs, got %v", replay.Diffs)
	}
}

// TestReplayDetectsTamperedResult ensures editing a stored output surfaces a
// field-level discrepancy instead of being silently accepted.
func TestReplayDetectsTamperedResult(t *testing.T) {
	rec := testAuditRecord(t)
	rec.Result.Total += 100

	replay, err := Replay(rec, testRegistry(t))
	if err != nil {
		t.Fatalf("Replay returned error: %v", err)
	}
	if replay.OK {
		t.Fatal("replay accepted a tampered record")
	}

	var sawTotal, sawHash bool
	for _, diff := range replay.Diffs {
		if diff.Field == "total" {
			sawTotal = true
		}
		if diff.Field == "content_hash" {
			sawHash = true
		}
	}
	if !sawTotal {
		t.Fatalf("diffs do not name the tampered total: %+v", replay.Diffs)
	}
	if !sawHash {
		t.Fatalf("diffs do not include the hash mismatch: %+v", replay.Diffs)
	}
}

// TestReplayDetectsTamperedInputs ensures editing a stored input changes the
// recomputation and is reported, not auto-corrected.
func TestReplayDetectsTamperedInputs(t *testing.T) {
	rec := testAuditRecord(t)

	stats := rec.Inputs.Stats["batter"]
	stats.RunsScored += 10
	rec.Inputs.Stats["batter"] = stats

	replay, err := Replay(rec, testRegistry(t))
	if err != nil {
		t.Fatalf("Replay returned error: %v", err)
	}
	if replay.OK {
		t.Fatal("replay accepted tampered inputs")
	}

	var sawSlotDiff bool
	for _, diff := range replay.Diffs {
		if strings.HasPrefix(diff.Field, "slots[0]") || strings.HasPrefix(diff.Field, "breakdowns") {
			sawSlotDiff = true
		}
	}
	if !sawSlotDiff {
		t.Fatalf("diffs do not name the recomputed fields: %+v", replay.Diffs)
	}
}

// TestReplayUnknownRuleVersion ensures a record stamped with a version the
// registry no longer carries reports a mismatch naming that version instead
// of failing outright; disputes over retired versions still get an answer.
func TestReplayUnknownRuleVersion(t *testing.T) {
	rec := testAuditRecord(t)
	rec.RuleVersion = "v999"

	replay, err := Replay(rec, testRegistry(t))
	if err != nil {
		t.Fatalf("Replay returned error: %v", err)
	}
	if replay.OK {
		t.Fatal("replay accepted a record under an unknown rule version")
	}
	if len(replay.Diffs) != 1 || replay.Diffs[0].Field != "rule_version" {
		t.Fatalf("expected a single rule_version diff, got %+v", replay.Diffs)
	}
	if replay.Diffs[0].Stored != "v999" {
		t.Fatalf("diff does not name the unknown version: %+v", replay.Diffs[0])
	}
}

// TestAuditHashFieldOrderIndependent ensures the content hash does not
// depend on map construction order.
func TestAuditHashFieldOrderIndependent(t *testing.T) {
	rec := testAuditRecord(t)

	reordered, err := CloneAuditRecord(rec)
	if err != nil {
		t.Fatalf("CloneAuditRecord returned error: %v", err)
	}
	reordered.Inputs.Assignments = map[int]string{}
	for slot := SlotCount; slot >= 1; slot-- {
		if playerID, ok := rec.Inputs.Assignments[slot]; ok {
			reordered.Inputs.Assignments[slot] = playerID
		}
	}

	original, err := ComputeAuditHash(rec)
	if err != nil {
		t.Fatalf("ComputeAuditHash returned error: %v", err)
	}
	rebuilt, err := ComputeAuditHash(reordered)
	if err != nil {
		t.Fatalf("ComputeAuditHash returned error: %v", err)
	}
	if original != rebuilt {
		t.Fatalf("hash depends on construction order: %s vs %s", original, rebuilt)
	}
}

// TestSerializeRoundTrip ensures storage encoding is lossless and the hash
// re-derives from a deserialized record.
func TestSerializeRoundTrip(t *testing.T) {
	rec := testAuditRecord(t)

	raw, err := SerializeAuditRecord(rec)
	if err != nil {
		t.Fatalf("SerializeAuditRecord returned error: %v", err)
	}
	restored, err := DeserializeAuditRecord(raw)
	if err != nil {
		t.Fatalf("DeserializeAuditRecord returned error: %v", err)
	}

	if restored.ID != rec.ID || restored.ContentHash != rec.ContentHash {
		t.Fatalf("round trip lost identity: %+v", restored)
	}
	if err := ValidateAuditRecord(restored); err != nil {
		t.Fatalf("ValidateAuditRecord returned error: %v", err)
	}

	restored.Result.Total++
	if err := ValidateAuditRecord(restored); err == nil {
		t.Fatal("ValidateAuditRecord accepted a modified record")
	}
}

// TestCloneAuditRecordIndependent ensures a clone can be mutated for what-if
// replay without touching the original.
func TestCloneAuditRecordIndependent(t *testing.T) {
	rec := testAuditRecord(t)

	clone, err := CloneAuditRecord(rec)
	if err != nil {
		t.Fatalf("CloneAuditRecord returned error: %v", err)
	}

	stats := clone.Inputs.Stats["batter"]
	stats.RunsScored = 999
	clone.Inputs.Stats["batter"] = stats
	clone.Inputs.Assignments[3] = "extra"

	if rec.Inputs.Stats["batter"].RunsScored == 999 {
		t.Fatal("mutating clone stats changed the original")
	}
	if _, ok := rec.Inputs.Assignments[3]; ok {
		t.Fatal("mutating clone assignments changed the original")
	}
}

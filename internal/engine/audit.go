package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"cricket-contest/internal/domain"
)

// AuditInputs is the complete input snapshot a scoring run was computed
// from: the raw stats, the sparse pick as submitted, and the admin
// multiplier table as entered. Replay uses these and nothing else.
type AuditInputs struct {
	Stats       map[string]domain.PlayerMatchStats `json:"stats"`
	Assignments map[int]string                     `json:"assignments"`
	Multipliers map[int]float64                    `json:"multipliers"`
	Disabled    []int                              `json:"disabled,omitempty"`
}

// AuditRecord is the stored, hashed snapshot of one scoring computation.
// Records are append-only: a rescoring event creates a new record, never
// edits an old one.
type AuditRecord struct {
	ID            string            `json:"id"`
	MatchID       string            `json:"match_id"`
	ParticipantID string            `json:"participant_id"`
	RuleVersion   string            `json:"rule_version"`
	Inputs        AuditInputs       `json:"inputs"`
	Result        ParticipantResult `json:"result"`
	ContentHash   string            `json:"content_hash"`
	CreatedAt     time.Time         `json:"created_at"`
}

// FieldDiff is one field that differs between a stored result and its
// replayed recomputation.
type FieldDiff struct {
	Field      string `json:"field"`
	Stored     string `json:"stored"`
	Recomputed string `json:"recomputed"`
}

// ReplayResult reports whether a deterministic recomputation reproduced the
// stored record exactly. A mismatch means either tampering (stored inputs or
// outputs edited after the fact) or logic drift (the scoring code changed
// behavior); both are escalated, never auto-corrected.
type ReplayResult struct {
	OK    bool        `json:"ok"`
	Diffs []FieldDiff `json:"diffs,omitempty"`
}

// NewAuditRecord builds the audit record for one computed score, including
// the content hash over a canonical serialization of all inputs and outputs.
func NewAuditRecord(
	id, matchID, participantID string,
	rules *RuleVersion,
	inputs AuditInputs,
	result ParticipantResult,
	now time.Time,
) (AuditRecord, error) {
	rec := AuditRecord{
		ID:            id,
		MatchID:       matchID,
		ParticipantID: participantID,
		RuleVersion:   rules.Version,
		Inputs:        inputs,
		Result:        result,
		CreatedAt:     now.UTC(),
	}

	hash, err := ComputeAuditHash(rec)
	if err != nil {
		return AuditRecord{}, err
	}
	rec.ContentHash = hash
	return rec, nil
}

// ComputeAuditHash hashes the record's identity, inputs and result over a
// canonical sorted-key encoding, so the hash does not depend on incidental
// construction or field order.
func ComputeAuditHash(rec AuditRecord) (string, error) {
	hashable := struct {
		MatchID       string            `json:"match_id"`
		ParticipantID string            `json:"participant_id"`
		RuleVersion   string            `json:"rule_version"`
		Inputs        AuditInputs       `json:"inputs"`
		Result        ParticipantResult `json:"result"`
	}{
		MatchID:       rec.MatchID,
		ParticipantID: rec.ParticipantID,
		RuleVersion:   rec.RuleVersion,
		Inputs:        rec.Inputs,
		Result:        rec.Result,
	}

	canonical, err := canonicalJSON(hashable)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize audit record: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalJSON encodes a value deterministically: the value is round
// tripped through an untyped form so every object is emitted with sorted
// keys regardless of how it was built.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var untyped any
	if err := json.Unmarshal(raw, &untyped); err != nil {
		return nil, err
	}
	return json.Marshal(untyped)
}

// Replay re-executes the full scoring pipeline from the record's stored
// inputs alone and compares the fresh result and hash against the stored
// ones. Success means an exact match; failure reports every differing
// field. A record stamped with a version the registry no longer knows is a
// mismatch, not an internal error: the caller gets a diff naming the
// missing version and can escalate it like any other discrepancy.
func Replay(rec AuditRecord, registry *Registry) (ReplayResult, error) {
	rules, err := registry.Get(rec.RuleVersion)
	if errors.Is(err, ErrUnknownRuleVersion) {
		return ReplayResult{
			OK: false,
			Diffs: []FieldDiff{{
				Field:      "rule_version",
				Stored:     rec.RuleVersion,
				Recomputed: "not in registry",
			}},
		}, nil
	}
	if err != nil {
		return ReplayResult{}, err
	}

	sparse, err := ParseAssignments(rec.Inputs.Assignments)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("stored assignments are invalid: %w", err)
	}
	config, err := ParseAdminConfig(rec.Inputs.Multipliers, rec.Inputs.Disabled)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("stored admin config is invalid: %w", err)
	}

	recomputed := ScoreParticipant(sparse, config, rec.Inputs.Stats, rules)

	diffs, err := diffResults(rec.Result, recomputed)
	if err != nil {
		return ReplayResult{}, err
	}

	expectedHash, err := ComputeAuditHash(rec)
	if err != nil {
		return ReplayResult{}, err
	}
	if expectedHash != rec.ContentHash {
		diffs = append(diffs, FieldDiff{
			Field:      "content_hash",
			Stored:     rec.ContentHash,
			Recomputed: expectedHash,
		})
	}

	return ReplayResult{OK: len(diffs) == 0, Diffs: diffs}, nil
}

// diffResults compares two results field by field via their canonical
// encodings and reports every path whose value differs.
func diffResults(stored, recomputed ParticipantResult) ([]FieldDiff, error) {
	storedFields, err := flattenFields(stored)
	if err != nil {
		return nil, err
	}
	recomputedFields, err := flattenFields(recomputed)
	if err != nil {
		return nil, err
	}

	paths := make(map[string]bool, len(storedFields))
	for path := range storedFields {
		paths[path] = true
	}
	for path := range recomputedFields {
		paths[path] = true
	}

	var diffs []FieldDiff
	for path := range paths {
		oldVal, oldOK := storedFields[path]
		newVal, newOK := recomputedFields[path]
		if oldOK && newOK && oldVal == newVal {
			continue
		}
		diffs = append(diffs, FieldDiff{Field: path, Stored: oldVal, Recomputed: newVal})
	}

	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Field < diffs[j].Field })
	return diffs, nil
}

// flattenFields projects a result to path->value pairs like
// "slots[4].final_score" for field-level diff reporting.
func flattenFields(v any) (map[string]string, error) {
	raw, err := canonicalJSON(v)
	if err != nil {
		return nil, err
	}
	var untyped any
	if err := json.Unmarshal(raw, &untyped); err != nil {
		return nil, err
	}

	out := make(map[string]string)
	flattenInto("", untyped, out)
	return out, nil
}

func flattenInto(prefix string, v any, out map[string]string) {
	switch value := v.(type) {
	case map[string]any:
		for key, child := range value {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			flattenInto(path, child, out)
		}
	case []any:
		for i, child := range value {
			flattenInto(fmt.Sprintf("%s[%d]", prefix, i), child, out)
		}
	default:
		out[prefix] = fmt.Sprint(value)
	}
}

// SerializeAuditRecord encodes a record for storage; DeserializeAuditRecord
// is its lossless inverse.
func SerializeAuditRecord(rec AuditRecord) ([]byte, error) {
	return json.Marshal(rec)
}

// DeserializeAuditRecord decodes a stored record.
func DeserializeAuditRecord(raw []byte) (AuditRecord, error) {
	var rec AuditRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return AuditRecord{}, fmt.Errorf("failed to decode audit record: %w", err)
	}
	return rec, nil
}

// ValidateAuditRecord re-derives the content hash of a deserialized record
// and reports any mismatch.
func ValidateAuditRecord(rec AuditRecord) error {
	expected, err := ComputeAuditHash(rec)
	if err != nil {
		return err
	}
	if expected != rec.ContentHash {
		return fmt.Errorf("audit record %s hash mismatch: stored %s, derived %s",
			rec.ID, rec.ContentHash, expected)
	}
	return nil
}

// CloneAuditRecord returns an independent deep copy, safe for what-if replay
// experiments without risking mutation of the original.
func CloneAuditRecord(rec AuditRecord) (AuditRecord, error) {
	raw, err := SerializeAuditRecord(rec)
	if err != nil {
		return AuditRecord{}, err
	}
	return DeserializeAuditRecord(raw)
}

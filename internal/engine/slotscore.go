package engine

import (
	"cricket-contest/internal/domain"
)

// SlotScoreResult is one slot's contribution to a participant's match total.
// Empty slots are retained with a zero score for transparency.
type SlotScoreResult struct {
	Slot       SlotIndex `json:"slot"`
	PlayerID   string    `json:"player_id,omitempty"`
	BaseScore  int       `json:"base_score"`
	Multiplier float64   `json:"multiplier"`
	FinalScore float64   `json:"final_score"`
}

// ParticipantResult is one participant's computed outcome for one match:
// all 11 conflict-resolved slot scores, the per-player breakdowns behind
// them, and their full-precision sum.
type ParticipantResult struct {
	Slots      []SlotScoreResult             `json:"slots"`
	Breakdowns map[string]BaseScoreBreakdown `json:"breakdowns"`
	Total      float64                       `json:"total"`
}

// SlotScore combines a base score with its slot multiplier. The result is
// clamped to non-negative even though validated inputs cannot produce a
// negative product, and carries full precision; rounding for display is an
// external presentation concern.
func SlotScore(baseScore int, multiplier float64) float64 {
	score := float64(baseScore) * multiplier
	if score < 0 {
		return 0
	}
	return score
}

// ScoreSlots produces one SlotScoreResult per slot for an already
// conflict-resolved pick. Players without valid participation and empty
// slots both contribute zero, but every slot appears in the output.
func ScoreSlots(
	resolved ResolvedAssignments,
	config ResolvedAdminConfig,
	stats map[string]domain.PlayerMatchStats,
	rules *RuleVersion,
) ParticipantResult {
	result := ParticipantResult{
		Slots:      make([]SlotScoreResult, 0, SlotCount),
		Breakdowns: make(map[string]BaseScoreBreakdown),
	}

	for i := 1; i <= SlotCount; i++ {
		slot := SlotIndex(i)
		entry := SlotScoreResult{
			Slot:       slot,
			PlayerID:   resolved[slot],
			Multiplier: config[slot],
		}

		if entry.PlayerID != "" {
			if playerStats, ok := stats[entry.PlayerID]; ok && HasValidParticipation(playerStats) {
				breakdown := ComputeBaseScore(playerStats, rules)
				result.Breakdowns[entry.PlayerID] = breakdown
				entry.BaseScore = breakdown.Total
				entry.FinalScore = SlotScore(breakdown.Total, entry.Multiplier)
			}
		}

		result.Slots = append(result.Slots, entry)
		result.Total += entry.FinalScore
	}

	return result
}

// ScoreParticipant runs the full pure pipeline for one participant: resolve
// the sparse pick, resolve slot conflicts, resolve the admin config, score
// every slot and sum. This is the single code path both live scoring and
// audit replay execute.
func ScoreParticipant(
	sparse Assignments,
	config AdminConfig,
	stats map[string]domain.PlayerMatchStats,
	rules *RuleVersion,
) ParticipantResult {
	resolved := ResolveConflicts(ResolveAssignments(sparse))
	multipliers := ResolveAdminConfig(config, rules)
	return ScoreSlots(resolved, multipliers, stats, rules)
}

// ScoreParticipantStamped runs ScoreParticipant and stamps the result with
// the rule version that produced it. Callers merging results into shared
// state go through the stamp, not the bare result, so a payload computed
// under one version cannot slip into state governed by another.
func ScoreParticipantStamped(
	sparse Assignments,
	config AdminConfig,
	stats map[string]domain.PlayerMatchStats,
	rules *RuleVersion,
) Stamped[ParticipantResult] {
	return NewStamped(rules, ScoreParticipant(sparse, config, stats, rules))
}

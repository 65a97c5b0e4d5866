package engine

import (
	"errors"
	"testing"

	"cricket-contest/internal/domain"
)

// TestValidateStats ensures malformed statistics are rejected before any
// scoring can see them: a missing player id, any negative count, or a balls
// component outside a single over.
func TestValidateStats(t *testing.T) {
	valid := domain.PlayerMatchStats{
		PlayerID: "allrounder", RunsScored: 50, BallsFaced: 30, Fours: 4,
		WicketsTaken: 2, OversFull: 4, OversBalls: 3, RunsConceded: 28,
		Catches: 1,
	}

	tcs := []struct {
		name    string
		mutate  func(*domain.PlayerMatchStats)
		wantErr bool
	}{
		{"valid stats", func(s *domain.PlayerMatchStats) {}, false},
		{"zero stats valid", func(s *domain.PlayerMatchStats) {
			*s = domain.PlayerMatchStats{PlayerID: "bench"}
		}, false},
		{"missing player id", func(s *domain.PlayerMatchStats) { s.PlayerID = "" }, true},
		{"negative runs", func(s *domain.PlayerMatchStats) { s.RunsScored = -50 }, true},
		{"negative balls faced", func(s *domain.PlayerMatchStats) { s.BallsFaced = -1 }, true},
		{"negative fours", func(s *domain.PlayerMatchStats) { s.Fours = -2 }, true},
		{"negative sixes", func(s *domain.PlayerMatchStats) { s.Sixes = -1 }, true},
		{"negative wickets", func(s *domain.PlayerMatchStats) { s.WicketsTaken = -3 }, true},
		{"negative full overs", func(s *domain.PlayerMatchStats) { s.OversFull = -4 }, true},
		{"negative over balls", func(s *domain.PlayerMatchStats) { s.OversBalls = -1 }, true},
		{"over balls past an over", func(s *domain.PlayerMatchStats) { s.OversBalls = 6 }, true},
		{"negative runs conceded", func(s *domain.PlayerMatchStats) { s.RunsConceded = -10 }, true},
		{"negative catches", func(s *domain.PlayerMatchStats) { s.Catches = -1 }, true},
		{"negative run outs", func(s *domain.PlayerMatchStats) { s.RunOuts = -1 }, true},
		{"negative stumpings", func(s *domain.PlayerMatchStats) { s.Stumpings = -1 }, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			stats := valid
			tc.mutate(&stats)

			err := ValidateStats(stats)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidStats) {
					t.Fatalf("error = %v, want %v", err, ErrInvalidStats)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateStats returned error: %v", err)
			}
		})
	}
}

// TestValidatedStatsNeverScoreNegative ties validation to the breakdown
// invariant: any stats that pass ValidateStats produce only non-negative
// breakdown categories.
func TestValidatedStatsNeverScoreNegative(t *testing.T) {
	rules := testRules(t)

	stats := domain.PlayerMatchStats{
		PlayerID: "duck", RunsScored: 0, BallsFaced: 3,
		OversFull: 2, RunsConceded: 30,
	}
	if err := ValidateStats(stats); err != nil {
		t.Fatalf("ValidateStats returned error: %v", err)
	}

	breakdown := ComputeBaseScore(stats, rules)
	categories := []int{
		breakdown.RunPoints, breakdown.BoundaryPoints, breakdown.StrikeRateBonus,
		breakdown.WicketPoints, breakdown.EconomyBonus, breakdown.FieldingPoints,
		breakdown.MilestoneBonus, breakdown.Total,
	}
	for i, category := range categories {
		if category < 0 {
			t.Fatalf("category %d is negative: %+v", i, breakdown)
		}
	}
}

package engine

import (
	"testing"

	"cricket-contest/internal/domain"
)

// TestGoldenBaseScores pins hand-computed scores for rule version v1. These
// values are the engine's regression safety net: for a fixed rule version
// they must never change, and any deviation is a regression, full stop.
func TestGoldenBaseScores(t *testing.T) {
	rules := testRules(t)

	tcs := []struct {
		name          string
		stats         domain.PlayerMatchStats
		participates  bool
		wantBreakdown BaseScoreBreakdown
	}{
		{
			name: "batting only",
			stats: domain.PlayerMatchStats{
				RunsScored: 50, BallsFaced: 30, Fours: 4, Sixes: 1,
			},
			participates: true,
			wantBreakdown: BaseScoreBreakdown{
				RunPoints: 50, BoundaryPoints: 60, StrikeRateBonus: 167,
				Total: 277,
			},
		},
		{
			name: "bowling only",
			stats: domain.PlayerMatchStats{
				WicketsTaken: 3, OversFull: 4, RunsConceded: 20,
			},
			participates: true,
			wantBreakdown: BaseScoreBreakdown{
				WicketPoints: 60, EconomyBonus: 25,
				Total: 85,
			},
		},
		{
			name: "all-rounder with every milestone",
			stats: domain.PlayerMatchStats{
				RunsScored: 110, BallsFaced: 100, Fours: 10, Sixes: 2,
				WicketsTaken: 5, OversFull: 10, RunsConceded: 45,
				Catches: 1, IsManOfMatch: true,
				HasCentury: true, HasFiveWicketHaul: true, HasHatTrick: true,
			},
			participates: true,
			wantBreakdown: BaseScoreBreakdown{
				RunPoints: 110, BoundaryPoints: 140, StrikeRateBonus: 110,
				WicketPoints: 100, EconomyBonus: 25, FieldingPoints: 5,
				MilestoneBonus: 175,
				Total:          665,
			},
		},
		{
			name:          "invalid participation placeholder",
			stats:         domain.PlayerMatchStats{PlayerID: "ghost"},
			participates:  false,
			wantBreakdown: BaseScoreBreakdown{},
		},
		{
			name: "worst valid performance scores zero",
			stats: domain.PlayerMatchStats{
				RunsScored: 0, BallsFaced: 3,
			},
			participates:  true,
			wantBreakdown: BaseScoreBreakdown{},
		},
		{
			name: "extreme strike rate",
			stats: domain.PlayerMatchStats{
				RunsScored: 30, BallsFaced: 2, Sixes: 5,
			},
			participates: true,
			wantBreakdown: BaseScoreBreakdown{
				RunPoints: 30, BoundaryPoints: 100, StrikeRateBonus: 1500,
				Total: 1630,
			},
		},
		{
			name: "fractional overs economy",
			stats: domain.PlayerMatchStats{
				WicketsTaken: 1, OversFull: 3, OversBalls: 3, RunsConceded: 21,
			},
			participates: true,
			wantBreakdown: BaseScoreBreakdown{
				WicketPoints: 20, EconomyBonus: 25,
				Total: 45,
			},
		},
		{
			name: "economy tier boundary medium",
			stats: domain.PlayerMatchStats{
				OversFull: 4, RunsConceded: 32,
			},
			participates: true,
			wantBreakdown: BaseScoreBreakdown{
				EconomyBonus: 15,
				Total:        15,
			},
		},
		{
			name: "economy tier boundary small",
			stats: domain.PlayerMatchStats{
				OversFull: 4, RunsConceded: 40,
			},
			participates: true,
			wantBreakdown: BaseScoreBreakdown{
				EconomyBonus: 10,
				Total:        10,
			},
		},
		{
			name: "economy over worst tier",
			stats: domain.PlayerMatchStats{
				OversFull: 4, RunsConceded: 41,
			},
			participates:  true,
			wantBreakdown: BaseScoreBreakdown{},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasValidParticipation(tc.stats); got != tc.participates {
				t.Fatalf("HasValidParticipation = %v, want %v", got, tc.participates)
			}
			if got := ComputeBaseScore(tc.stats, rules); got != tc.wantBreakdown {
				t.Fatalf("breakdown = %+v, want %+v", got, tc.wantBreakdown)
			}
		})
	}
}

// TestGoldenSlotScores pins multiplier edge cases for rule version v1.
func TestGoldenSlotScores(t *testing.T) {
	tcs := []struct {
		name       string
		base       int
		multiplier float64
		want       float64
	}{
		{"fractional", 100, 2.5, 250},
		{"very large", 665, 100, 66500},
		{"identity", 277, 1, 277},
		{"disabled-style zero", 277, 0, 0},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := SlotScore(tc.base, tc.multiplier); got != tc.want {
				t.Fatalf("SlotScore = %v, want %v", got, tc.want)
			}
		})
	}
}

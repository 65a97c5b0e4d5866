package engine

import (
	"math"

	"cricket-contest/internal/domain"
)

// BaseScoreBreakdown is a player's base score split into its per-category
// subtotals. Categories only add, so Total is always >= 0 and must equal the
// sum of the categories; the breakdown itself is part of the audit trail.
type BaseScoreBreakdown struct {
	RunPoints       int `json:"run_points"`
	BoundaryPoints  int `json:"boundary_points"`
	StrikeRateBonus int `json:"strike_rate_bonus"`
	WicketPoints    int `json:"wicket_points"`
	EconomyBonus    int `json:"economy_bonus"`
	FieldingPoints  int `json:"fielding_points"`
	MilestoneBonus  int `json:"milestone_bonus"`
	Total           int `json:"total"`
}

// HasValidParticipation reports whether the stats describe a player who
// actually took part: faced at least one ball, bowled at least one legal
// delivery, recorded any fielding contribution, or was named Man of the
// Match. Placeholder zero entries score as excluded, not as zero-but-counted.
func HasValidParticipation(stats domain.PlayerMatchStats) bool {
	if stats.BallsFaced > 0 {
		return true
	}
	if stats.OversBowled().TotalBalls() > 0 {
		return true
	}
	if stats.Catches > 0 || stats.RunOuts > 0 || stats.Stumpings > 0 {
		return true
	}
	return stats.IsManOfMatch
}

// ComputeBaseScore converts one player's match statistics into a point
// breakdown under the given rule version. Pure: identical stats and rules
// always yield an identical breakdown.
func ComputeBaseScore(stats domain.PlayerMatchStats, rules *RuleVersion) BaseScoreBreakdown {
	var b BaseScoreBreakdown

	b.RunPoints = stats.RunsScored * rules.RunPoints
	b.BoundaryPoints = stats.Fours*rules.FourBonus + stats.Sixes*rules.SixBonus

	if stats.BallsFaced > 0 {
		rate := float64(stats.RunsScored) / float64(stats.BallsFaced) * 100
		b.StrikeRateBonus = roundHalfAwayFromZero(rate)
	}

	b.WicketPoints = stats.WicketsTaken * rules.WicketPoints
	b.EconomyBonus = economyBonus(stats, rules)

	b.FieldingPoints = stats.Catches*rules.CatchPoints +
		stats.RunOuts*rules.RunOutPoints +
		stats.Stumpings*rules.StumpingPoints

	if stats.HasCentury {
		b.MilestoneBonus += rules.CenturyBonus
	}
	if stats.HasFiveWicketHaul {
		b.MilestoneBonus += rules.FiveWicketBonus
	}
	if stats.HasHatTrick {
		b.MilestoneBonus += rules.HatTrickBonus
	}
	if stats.IsManOfMatch {
		b.MilestoneBonus += rules.ManOfMatchBonus
	}

	b.Total = b.RunPoints + b.BoundaryPoints + b.StrikeRateBonus +
		b.WicketPoints + b.EconomyBonus + b.FieldingPoints + b.MilestoneBonus
	return b
}

// economyBonus awards the bowling economy bonus only once a full over has
// been bowled. Tiers have inclusive upper bounds and the lowest matching
// tier applies.
func economyBonus(stats domain.PlayerMatchStats, rules *RuleVersion) int {
	overs := stats.OversBowled()
	if overs.Full < 1 {
		return 0
	}

	rate := float64(stats.RunsConceded) / overs.Decimal()
	for _, tier := range rules.EconomyTiers {
		if rate <= tier.MaxRate {
			return tier.Bonus
		}
	}
	return 0
}

// roundHalfAwayFromZero is the single rounding applied to the strike-rate
// bonus; nothing downstream re-rounds it.
func roundHalfAwayFromZero(x float64) int {
	return int(math.Round(x))
}

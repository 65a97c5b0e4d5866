package engine

import (
	"fmt"

	"cricket-contest/internal/domain"
)

// ValidateStats rejects malformed player statistics before any scoring or
// storage happens. Every count must be non-negative and the balls component
// of the overs notation must stay inside a single over. Valid stats can
// never produce a negative breakdown category.
func ValidateStats(stats domain.PlayerMatchStats) error {
	if stats.PlayerID == "" {
		return fmt.Errorf("%w: missing player id", ErrInvalidStats)
	}

	counts := []struct {
		name  string
		value int
	}{
		{"runs scored", stats.RunsScored},
		{"balls faced", stats.BallsFaced},
		{"fours", stats.Fours},
		{"sixes", stats.Sixes},
		{"wickets taken", stats.WicketsTaken},
		{"full overs", stats.OversFull},
		{"over balls", stats.OversBalls},
		{"runs conceded", stats.RunsConceded},
		{"catches", stats.Catches},
		{"run outs", stats.RunOuts},
		{"stumpings", stats.Stumpings},
	}
	for _, count := range counts {
		if count.value < 0 {
			return fmt.Errorf("%w: player %s: %s is negative (%d)",
				ErrInvalidStats, stats.PlayerID, count.name, count.value)
		}
	}

	if stats.OversBalls > 5 {
		return fmt.Errorf("%w: player %s: over balls must be 0-5, got %d",
			ErrInvalidStats, stats.PlayerID, stats.OversBalls)
	}
	return nil
}

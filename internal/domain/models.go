package domain

import (
	"time"
)

type Match struct {
	MatchID   string
	Name      string
	Venue     string
	StartsAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overs is cricket over notation: completed overs plus 0-5 legal balls of
// the over in progress. It is not a decimal fraction; "4.3" means 4 overs
// and 3 balls, i.e. 27 legal deliveries.
type Overs struct {
	Full  int
	Balls int
}

// TotalBalls returns the number of legal deliveries bowled.
func (o Overs) TotalBalls() int {
	return o.Full*6 + o.Balls
}

// Decimal converts the notation to a fractional over count for rate math.
func (o Overs) Decimal() float64 {
	return float64(o.Full) + float64(o.Balls)/6.0
}

// PlayerMatchStats is one player's raw statistics for one match, entered by
// the admin. Immutable once scoring has run against it; re-entry requires an
// explicit rescore, never a silent overwrite.
type PlayerMatchStats struct {
	PlayerID          string    `json:"player_id"`
	RunsScored        int       `json:"runs_scored"`
	BallsFaced        int       `json:"balls_faced"`
	Fours             int       `json:"fours"`
	Sixes             int       `json:"sixes"`
	WicketsTaken      int       `json:"wickets_taken"`
	OversFull         int       `json:"overs_full"`
	OversBalls        int       `json:"overs_balls"`
	RunsConceded      int       `json:"runs_conceded"`
	Catches           int       `json:"catches"`
	RunOuts           int       `json:"run_outs"`
	Stumpings         int       `json:"stumpings"`
	IsManOfMatch      bool      `json:"is_man_of_match"`
	HasCentury        bool      `json:"has_century"`
	HasFiveWicketHaul bool      `json:"has_five_wicket_haul"`
	HasHatTrick       bool      `json:"has_hat_trick"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

// OversBowled returns the bowling figures in over notation.
func (s PlayerMatchStats) OversBowled() Overs {
	return Overs{Full: s.OversFull, Balls: s.OversBalls}
}

// TeamSubmission is one participant's 11-slot pick for one match. Assignments
// is sparse: only the slots the participant actually filled are present.
type TeamSubmission struct {
	MatchID       string
	ParticipantID string
	Assignments   map[int]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AdminSlotConfig is the per-match multiplier table as stored: a sparse
// slot->multiplier map plus the slots the admin explicitly disabled.
type AdminSlotConfig struct {
	MatchID       string
	Multipliers   map[int]float64
	DisabledSlots []int
	UpdatedAt     time.Time
}

type LeaderboardEntry struct {
	ParticipantID string  `json:"participant_id"`
	TotalScore    float64 `json:"total_score"`
	MatchesScored int     `json:"matches_scored"`
	Rank          int     `json:"rank"`
}

// MatchScore is the current score one participant holds for one match. It is
// the mutable projection the leaderboard aggregates over; the append-only
// audit trail lives separately.
type MatchScore struct {
	MatchID       string
	ParticipantID string
	RuleVersion   string
	Total         float64
	AuditID       string
	UpdatedAt     time.Time
}

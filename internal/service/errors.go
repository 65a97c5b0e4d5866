package service

import "errors"

var (
	// ErrMatchNotFound reports an operation against an unknown match.
	ErrMatchNotFound = errors.New("match not found")

	// ErrStatsLocked reports a stats re-entry for a match that has already
	// been scored without an explicit rescore request.
	ErrStatsLocked = errors.New("stats are locked: match already scored, rescore required")

	// ErrNothingToScore reports a scoring run for a match with no team
	// submissions.
	ErrNothingToScore = errors.New("no team submissions to score")
)

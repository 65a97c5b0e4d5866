package engine

import "errors"

var (
	// ErrInvalidSlotIndex reports a slot index outside 1..11.
	ErrInvalidSlotIndex = errors.New("slot index out of range")

	// ErrInvalidMultiplier reports a negative, NaN or infinite multiplier.
	ErrInvalidMultiplier = errors.New("invalid multiplier")

	// ErrUnknownRuleVersion reports a version identifier the registry does
	// not know.
	ErrUnknownRuleVersion = errors.New("unknown rule version")

	// ErrVersionMismatch reports a stamped artifact produced under a
	// different rule version than the consumer expects.
	ErrVersionMismatch = errors.New("rule version mismatch")

	// ErrMissingConfig reports an admin config without the required
	// structure.
	ErrMissingConfig = errors.New("admin config is missing")

	// ErrInvalidStats reports player statistics that fail validation before
	// scoring: a missing player id, a negative count, or an out-of-range
	// balls component.
	ErrInvalidStats = errors.New("invalid player stats")
)

package engine

import "fmt"

// Stamped wraps a computed artifact with the rule version that produced it,
// so provenance is never lost between computation and storage. Consumers
// refuse to merge a stale-version payload into state governed by the current
// version; that check is what keeps a mid-tournament rule change from
// silently contaminating already-scored matches.
type Stamped[T any] struct {
	Version string `json:"version"`
	Payload T      `json:"payload"`
}

// NewStamped wraps a payload with its producing rule version.
func NewStamped[T any](rules *RuleVersion, payload T) Stamped[T] {
	return Stamped[T]{Version: rules.Version, Payload: payload}
}

// HasValidStamp reports whether the wrapper carries a version identifier.
func (s Stamped[T]) HasValidStamp() bool {
	return s.Version != ""
}

// AssertVersion fails unless the payload was produced under the expected
// rule version. The caller must explicitly rescore under the correct
// version; the mismatch is never healed in place.
func (s Stamped[T]) AssertVersion(expected string) error {
	if !s.HasValidStamp() {
		return fmt.Errorf("%w: artifact carries no rule version", ErrVersionMismatch)
	}
	if s.Version != expected {
		return fmt.Errorf("%w: artifact computed under %s, leaderboard governed by %s",
			ErrVersionMismatch, s.Version, expected)
	}
	return nil
}

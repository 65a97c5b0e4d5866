package engine

import (
	"fmt"
	"math"
	"sort"
)

// AdminConfig is the per-match multiplier table as the admin entered it:
// a sparse slot->multiplier map plus slots the admin explicitly disabled.
// Disabled slots resolve to the rule version's default multiplier even when
// a multiplier was entered for them.
type AdminConfig struct {
	Multipliers map[SlotIndex]float64
	Disabled    map[SlotIndex]bool
}

// ResolvedAdminConfig covers all 11 slots with a non-negative finite
// multiplier; slots nobody configured carry the documented default rather
// than an accidental zero.
type ResolvedAdminConfig map[SlotIndex]float64

// ParseAdminConfig validates a raw slot->multiplier map and disabled list
// from storage or a client and converts them to a typed config.
func ParseAdminConfig(multipliers map[int]float64, disabled []int) (AdminConfig, error) {
	cfg := AdminConfig{
		Multipliers: make(map[SlotIndex]float64, len(multipliers)),
		Disabled:    make(map[SlotIndex]bool, len(disabled)),
	}
	for idx, mult := range multipliers {
		if !IsValidSlotIndex(idx) {
			return AdminConfig{}, fmt.Errorf("%w: %d", ErrInvalidSlotIndex, idx)
		}
		cfg.Multipliers[SlotIndex(idx)] = mult
	}
	for _, idx := range disabled {
		if !IsValidSlotIndex(idx) {
			return AdminConfig{}, fmt.Errorf("%w: %d", ErrInvalidSlotIndex, idx)
		}
		cfg.Disabled[SlotIndex(idx)] = true
	}
	if err := ValidateAdminConfig(cfg); err != nil {
		return AdminConfig{}, err
	}
	return cfg, nil
}

// ValidateAdminConfig rejects a config containing an out-of-range slot index
// or a negative, NaN or infinite multiplier. Validation happens before any
// scoring; bad values are never coerced or defaulted.
func ValidateAdminConfig(cfg AdminConfig) error {
	if cfg.Multipliers == nil {
		return ErrMissingConfig
	}
	for slot, mult := range cfg.Multipliers {
		if !slot.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidSlotIndex, int(slot))
		}
		if mult < 0 || math.IsNaN(mult) || math.IsInf(mult, 0) {
			return fmt.Errorf("%w: slot %d has multiplier %v", ErrInvalidMultiplier, int(slot), mult)
		}
	}
	for slot := range cfg.Disabled {
		if !slot.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidSlotIndex, int(slot))
		}
	}
	return nil
}

// ConfigCheck is the non-failing validation result for callers that branch
// instead of propagating an error.
type ConfigCheck struct {
	Valid    bool
	Problems []string
}

// CheckAdminConfig is the result-typed variant of ValidateAdminConfig. It
// collects every problem instead of stopping at the first.
func CheckAdminConfig(cfg AdminConfig) ConfigCheck {
	var problems []string
	if cfg.Multipliers == nil {
		problems = append(problems, "multiplier table is missing")
	}
	for slot, mult := range cfg.Multipliers {
		if !slot.Valid() {
			problems = append(problems, fmt.Sprintf("slot index %d out of range", int(slot)))
		}
		if mult < 0 || math.IsNaN(mult) || math.IsInf(mult, 0) {
			problems = append(problems, fmt.Sprintf("slot %d has invalid multiplier %v", int(slot), mult))
		}
	}
	for slot := range cfg.Disabled {
		if !slot.Valid() {
			problems = append(problems, fmt.Sprintf("disabled slot index %d out of range", int(slot)))
		}
	}
	sort.Strings(problems)
	return ConfigCheck{Valid: len(problems) == 0, Problems: problems}
}

// ResolveAdminConfig expands a partial config to all 11 slots. Unspecified
// and disabled slots resolve to the rule version's default multiplier,
// applied uniformly.
func ResolveAdminConfig(cfg AdminConfig, rules *RuleVersion) ResolvedAdminConfig {
	out := make(ResolvedAdminConfig, SlotCount)
	for i := 1; i <= SlotCount; i++ {
		slot := SlotIndex(i)
		out[slot] = rules.DefaultMultiplier
		if cfg.Disabled[slot] {
			continue
		}
		if mult, ok := cfg.Multipliers[slot]; ok {
			out[slot] = mult
		}
	}
	return out
}

// ExtractMultipliers projects a resolved config to a plain int-keyed lookup
// for storage and transport.
func ExtractMultipliers(resolved ResolvedAdminConfig) map[int]float64 {
	out := make(map[int]float64, len(resolved))
	for slot, mult := range resolved {
		out[int(slot)] = mult
	}
	return out
}

// NewDefaultAdminConfig builds a config in which every slot carries the rule
// version's default multiplier.
func NewDefaultAdminConfig(rules *RuleVersion) AdminConfig {
	cfg := AdminConfig{
		Multipliers: make(map[SlotIndex]float64, SlotCount),
		Disabled:    make(map[SlotIndex]bool),
	}
	for i := 1; i <= SlotCount; i++ {
		cfg.Multipliers[SlotIndex(i)] = rules.DefaultMultiplier
	}
	return cfg
}

// NewDescendingAdminConfig builds the common multiplier ladder: slot 1 gets
// start, each following slot steps down by step, floored at floor.
func NewDescendingAdminConfig(start, step, floor float64) AdminConfig {
	cfg := AdminConfig{
		Multipliers: make(map[SlotIndex]float64, SlotCount),
		Disabled:    make(map[SlotIndex]bool),
	}
	for i := 1; i <= SlotCount; i++ {
		mult := start - float64(i-1)*step
		if mult < floor {
			mult = floor
		}
		cfg.Multipliers[SlotIndex(i)] = mult
	}
	return cfg
}

// HasActiveMultipliers reports whether any slot deviates from the default.
func HasActiveMultipliers(resolved ResolvedAdminConfig, rules *RuleVersion) bool {
	for _, mult := range resolved {
		if mult != rules.DefaultMultiplier {
			return true
		}
	}
	return false
}

// MaxMultiplier returns the largest multiplier in a resolved config.
func MaxMultiplier(resolved ResolvedAdminConfig) float64 {
	max := 0.0
	for _, mult := range resolved {
		if mult > max {
			max = mult
		}
	}
	return max
}

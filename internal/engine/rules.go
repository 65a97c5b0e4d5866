// Package engine is the fantasy contest scoring engine: a stateless library
// of pure functions that turn raw player statistics, an 11-slot team pick and
// an admin multiplier table into an auditable, replayable score. Nothing in
// this package performs I/O or holds mutable state; identical inputs always
// produce identical outputs.
package engine

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed rules/*.yaml
var embedRules embed.FS

// SlotCount is the structural constant every rule version shares: a team pick
// has exactly 11 ordered slots, indexed 1..11.
const SlotCount = 11

// EconomyTier is one rung of the bowling economy bonus ladder. Tiers are
// ascending and mutually exclusive; MaxRate is an inclusive upper bound and
// the lowest matching tier applies.
type EconomyTier struct {
	MaxRate float64 `yaml:"max_rate"`
	Bonus   int     `yaml:"bonus"`
}

// RuleVersion is the "constitution": the immutable, versioned bundle of
// scoring weights, bonus thresholds and structural constants in force for a
// computation. New versions are created as new files, never mutated in place.
type RuleVersion struct {
	Version string `yaml:"version"`

	RunPoints int `yaml:"run_points"`
	FourBonus int `yaml:"four_bonus"`
	SixBonus  int `yaml:"six_bonus"`

	WicketPoints int           `yaml:"wicket_points"`
	EconomyTiers []EconomyTier `yaml:"economy_tiers"`

	CatchPoints    int `yaml:"catch_points"`
	RunOutPoints   int `yaml:"run_out_points"`
	StumpingPoints int `yaml:"stumping_points"`

	CenturyBonus    int `yaml:"century_bonus"`
	FiveWicketBonus int `yaml:"five_wicket_bonus"`
	HatTrickBonus   int `yaml:"hat_trick_bonus"`
	ManOfMatchBonus int `yaml:"man_of_match_bonus"`

	// DefaultMultiplier is what an unconfigured or disabled slot resolves
	// to, so every slot contributes a well-defined amount.
	DefaultMultiplier float64 `yaml:"default_multiplier"`
}

func (rv *RuleVersion) validate() error {
	if rv.Version == "" {
		return fmt.Errorf("rule version is missing a version identifier")
	}
	if rv.DefaultMultiplier < 0 {
		return fmt.Errorf("rule version %s: default multiplier is negative", rv.Version)
	}
	for i, tier := range rv.EconomyTiers {
		if i > 0 && tier.MaxRate <= rv.EconomyTiers[i-1].MaxRate {
			return fmt.Errorf("rule version %s: economy tiers are not ascending", rv.Version)
		}
	}
	return nil
}

// Registry holds every known rule version, loaded once from the embedded
// rule files. It is read-only after construction.
type Registry struct {
	versions map[string]*RuleVersion
}

// LoadRegistry parses all embedded rule files into a Registry.
func LoadRegistry() (*Registry, error) {
	entries, err := embedRules.ReadDir("rules")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded rules: %w", err)
	}

	reg := &Registry{versions: make(map[string]*RuleVersion, len(entries))}
	for _, entry := range entries {
		raw, err := embedRules.ReadFile("rules/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read rule file %s: %w", entry.Name(), err)
		}

		var rv RuleVersion
		if err := yaml.Unmarshal(raw, &rv); err != nil {
			return nil, fmt.Errorf("failed to parse rule file %s: %w", entry.Name(), err)
		}
		if err := rv.validate(); err != nil {
			return nil, fmt.Errorf("invalid rule file %s: %w", entry.Name(), err)
		}
		if _, dup := reg.versions[rv.Version]; dup {
			return nil, fmt.Errorf("duplicate rule version %s in %s", rv.Version, entry.Name())
		}
		reg.versions[rv.Version] = &rv
	}

	if len(reg.versions) == 0 {
		return nil, fmt.Errorf("no rule versions found")
	}
	return reg, nil
}

// Get returns the rule version with the given identifier.
func (r *Registry) Get(version string) (*RuleVersion, error) {
	rv, ok := r.versions[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRuleVersion, version)
	}
	return rv, nil
}

// Versions lists the known version identifiers in sorted order.
func (r *Registry) Versions() []string {
	out := make([]string, 0, len(r.versions))
	for v := range r.versions {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

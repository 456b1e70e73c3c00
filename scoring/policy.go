package scoring

import "fmt"

// Policy holds the tunable scoring constants.
//
// The constants live in an explicit configuration struct rather than
// package-level values so the cap and weights are testable and
// tenant-configurable.
type Policy struct {
	// MaxWeekHours is the weekly capacity cap per user.
	MaxWeekHours int `yaml:"maxWeekHours"`

	// SkillWeight and CapacityWeight blend skill match and remaining
	// capacity into the composite score. Both must be non-negative and
	// may not both be zero. The score is monotonic in each input for any
	// valid weights.
	SkillWeight    float64 `yaml:"skillWeight"`
	CapacityWeight float64 `yaml:"capacityWeight"`

	// MaxSkillLevel is the top of the proficiency scale; matched skill
	// levels are normalized against it.
	MaxSkillLevel int `yaml:"maxSkillLevel"`

	// NeutralSkillMatch is the skill-match value used for tasks that
	// require no skills. A neutral baseline (rather than automatic full
	// match) avoids biasing assignment toward unskilled tasks.
	// The zero value selects the default of 0.5.
	NeutralSkillMatch float64 `yaml:"neutralSkillMatch"`

	// IncludeCompleted keeps completed tasks in the workload sum, which
	// inflates utilization for users with a long task history. Leave
	// this false unless parity with historical assignment decisions is
	// required.
	IncludeCompleted bool `yaml:"includeCompleted"`
}

// DefaultPolicy returns a Policy with production defaults.
//
// Returns:
//   - Policy: 35h weekly cap, equal 0.5/0.5 score weights, 1..5 skill
//     scale, 0.5 neutral skill baseline, completed tasks excluded
func DefaultPolicy() Policy {
	return Policy{
		MaxWeekHours:      35,
		SkillWeight:       0.5,
		CapacityWeight:    0.5,
		MaxSkillLevel:     5,
		NeutralSkillMatch: 0.5,
	}
}

// SetDefaults fills missing policy values with production defaults.
//
// Parameters:
//   - p: Policy to apply defaults to (modified in place)
func SetDefaults(p *Policy) {
	defaults := DefaultPolicy()

	if p.MaxWeekHours == 0 {
		p.MaxWeekHours = defaults.MaxWeekHours
	}
	if p.SkillWeight == 0 && p.CapacityWeight == 0 {
		p.SkillWeight = defaults.SkillWeight
		p.CapacityWeight = defaults.CapacityWeight
	}
	if p.MaxSkillLevel == 0 {
		p.MaxSkillLevel = defaults.MaxSkillLevel
	}
	if p.NeutralSkillMatch == 0 {
		p.NeutralSkillMatch = defaults.NeutralSkillMatch
	}
}

// Validate checks policy constraints.
//
// Returns:
//   - error: Validation error with a clear explanation, nil if valid
func (p *Policy) Validate() error {
	if p.MaxWeekHours <= 0 {
		return fmt.Errorf("MaxWeekHours must be > 0, got %d", p.MaxWeekHours)
	}

	if p.SkillWeight < 0 || p.CapacityWeight < 0 {
		return fmt.Errorf(
			"score weights must be >= 0, got skill=%v capacity=%v",
			p.SkillWeight, p.CapacityWeight,
		)
	}

	if p.SkillWeight+p.CapacityWeight == 0 {
		return fmt.Errorf("at least one score weight must be > 0")
	}

	if p.MaxSkillLevel < 1 {
		return fmt.Errorf("MaxSkillLevel must be >= 1, got %d", p.MaxSkillLevel)
	}

	if p.NeutralSkillMatch < 0 || p.NeutralSkillMatch > 1 {
		return fmt.Errorf("NeutralSkillMatch must be in [0,1], got %v", p.NeutralSkillMatch)
	}

	return nil
}

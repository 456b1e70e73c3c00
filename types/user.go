package types

// SkillRating is a user's proficiency in a single skill.
type SkillRating struct {
	// SkillID references the rated skill.
	SkillID string `json:"skillId"`

	// Level is the proficiency on a 1..N scale, where N is the scoring
	// policy's MaxSkillLevel. Zero or negative means unrated.
	Level int `json:"level"`
}

// User is the read-only view of a potential assignee.
//
// The surrounding role system is reduced to a single capability flag here:
// CanReceiveTasks is true for users whose role set permits task assignment
// (e.g. managers and collaborators). The engine never inspects role strings.
type User struct {
	// ID uniquely identifies the user.
	ID string `json:"id"`

	// Name and Email are display-only.
	Name  string `json:"name"`
	Email string `json:"email"`

	// CanReceiveTasks gates candidacy. Users with this flag unset are
	// never scored.
	CanReceiveTasks bool `json:"canReceiveTasks"`

	// Skills holds the user's rated skills.
	Skills []SkillRating `json:"skills,omitempty"`
}

// SkillLevel returns the user's rated level for the given skill ID,
// or 0 when the skill is unrated.
func (u User) SkillLevel(skillID string) int {
	for _, s := range u.Skills {
		if s.SkillID == skillID {
			return s.Level
		}
	}

	return 0
}

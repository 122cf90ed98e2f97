package schema

import (
	"time"
)

type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "Beginner"
	SkillLevelIntermediate SkillLevel = "Intermediate"
	SkillLevelAdvanced     SkillLevel = "Advanced"
	SkillLevelExpert       SkillLevel = "Expert"
)

// Profile is a player profile. It is owned by the account system and is
// a read-only input to fit scoring.
type Profile struct {
	ID          string     `bson:"id" json:"id"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	Username    string     `bson:"username" json:"username"`
	DisplayName string     `bson:"display_name,omitempty" json:"display_name,omitempty"`
	SkillLevel  SkillLevel `bson:"skill_level,omitempty" json:"skill_level,omitempty"`
}

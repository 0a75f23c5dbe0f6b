package model

import "time"

// Achievement is a static catalog entry. IconName keys a client-side icon
// lookup and is opaque to the backend.
type Achievement struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	IconName           string      `json:"icon_name"`
	CriteriaCount      int         `json:"criteria_count,omitempty"`
	CriteriaDifficulty *Difficulty `json:"criteria_difficulty,omitempty"`
}

// UserAchievement records a badge earned by a user. At most one record may
// exist per (user, achievement) pair.
type UserAchievement struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IconName      string    `json:"icon_name"`
	EarnedAt      time.Time `json:"earned_at"`
}

func difficultyPtr(d Difficulty) *Difficulty { return &d }

// AchievementsCatalog lists every badge the evaluator can award.
var AchievementsCatalog = []Achievement{
	{
		ID:          "initiate_programmer",
		Name:        "Initiate Programmer",
		Description: "Successfully passed your first challenge!",
		IconName:    "Award",
	},
	{
		ID:                 "beginner_challenger_3",
		Name:               "Beginner Challenger",
		Description:        "Passed 3 challenges at Beginner difficulty.",
		IconName:           "Star",
		CriteriaCount:      3,
		CriteriaDifficulty: difficultyPtr(DifficultyBeginner),
	},
	{
		ID:                 "intermediate_adept_3",
		Name:               "Intermediate Adept",
		Description:        "Passed 3 challenges at Intermediate difficulty.",
		IconName:           "ShieldCheck",
		CriteriaCount:      3,
		CriteriaDifficulty: difficultyPtr(DifficultyIntermediate),
	},
	{
		ID:                 "advanced_virtuoso_3",
		Name:               "Advanced Virtuoso",
		Description:        "Passed 3 challenges at Advanced difficulty.",
		IconName:           "Gem",
		CriteriaCount:      3,
		CriteriaDifficulty: difficultyPtr(DifficultyAdvanced),
	},
}

func AchievementByID(id string) (Achievement, bool) {
	for _, a := range AchievementsCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

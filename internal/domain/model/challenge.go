package model

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
	// Expert is only offered in mock interviews.
	DifficultyExpert Difficulty = "Expert"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

func (d Difficulty) ValidForInterview() bool {
	return d.Valid() || d == DifficultyExpert
}

// QuestionTypePreference is what the user asks for; "both" requests a coding
// and a conceptual question in one session.
type QuestionTypePreference string

const (
	PreferCoding     QuestionTypePreference = "coding"
	PreferConceptual QuestionTypePreference = "conceptual"
	PreferBoth       QuestionTypePreference = "both"
)

func (p QuestionTypePreference) Valid() bool {
	switch p {
	case PreferCoding, PreferConceptual, PreferBoth:
		return true
	}
	return false
}

// QuestionType identifies which half of a generated challenge is being
// displayed or was submitted. Unlike the preference it is never "both".
type QuestionType string

const (
	QuestionTypeCoding     QuestionType = "coding"
	QuestionTypeConceptual QuestionType = "conceptual"
)

func (t QuestionType) Valid() bool {
	return t == QuestionTypeCoding || t == QuestionTypeConceptual
}

// ChallengeParameters are immutable once a session starts. Changing any field
// requires a new session.
type ChallengeParameters struct {
	Topic      string                 `json:"topic"`
	Difficulty Difficulty             `json:"difficulty"`
	Preference QuestionTypePreference `json:"question_type_preference"`
}

type GradingResult struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
	Passed   bool   `json:"passed"`
}

type GeneratedSolution struct {
	Solution    string `json:"solution"`
	Explanation string `json:"explanation"`
}

// ChallengeHistoryEntry is one submitted attempt. Entries are append-only:
// never mutated or deleted after creation.
type ChallengeHistoryEntry struct {
	ID                string             `json:"id"`
	UserID            string             `json:"user_id"`
	Topic             string             `json:"topic"`
	Difficulty        Difficulty         `json:"difficulty"`
	QuestionType      QuestionType       `json:"question_type"`
	Question          string             `json:"question"`
	UserSolution      string             `json:"user_solution"`
	GradingResult     GradingResult      `json:"grading_result"`
	GeneratedSolution *GeneratedSolution `json:"generated_solution,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

// HistoryFilter narrows a history query. Zero values match everything for
// that dimension; set fields combine with AND.
type HistoryFilter struct {
	Topic        string
	Difficulty   Difficulty
	Passed       *bool
	QuestionType QuestionType
}

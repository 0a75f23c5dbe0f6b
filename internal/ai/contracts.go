// Package ai defines the typed request/response contracts for every AI
// operation and the gateway interface that executes them. Input shapes are
// validated before a call is made; output shapes are validated after, so a
// malformed model response never reaches the rest of the system.
package ai

import (
	"fmt"
	"strings"

	"github.com/ydaher97/code-crafter/internal/common"
	"github.com/ydaher97/code-crafter/internal/domain/model"
)

// PassingScore is the grading policy threshold the prompts instruct the
// model to apply. Output validation holds the model to it.
const PassingScore = 60

const (
	maxHints = 3
	minHints = 1
)

type GeneratedType string

const (
	GeneratedCoding     GeneratedType = "coding"
	GeneratedConceptual GeneratedType = "conceptual"
	GeneratedBoth       GeneratedType = "both"
)

// ---- generateQuestion ----

// QuestionGenerationInput requests one question of a single concrete type.
// A "both" preference is fanned out by the caller into two of these.
type QuestionGenerationInput struct {
	Topic      string             `json:"topic"`
	Difficulty model.Difficulty   `json:"difficulty"`
	Type       model.QuestionType `json:"question_type"`
}

func (in QuestionGenerationInput) Validate() error {
	if strings.TrimSpace(in.Topic) == "" {
		return fmt.Errorf("topic is required: %w", common.ErrMissingParameters)
	}
	if !in.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q: %w", in.Difficulty, common.ErrMissingParameters)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("invalid question type %q: %w", in.Type, common.ErrMissingParameters)
	}
	return nil
}

type QuestionGenerationOutput struct {
	Question string   `json:"question"`
	Hints    []string `json:"hints"`
}

func (out QuestionGenerationOutput) Validate() error {
	if strings.TrimSpace(out.Question) == "" {
		return fmt.Errorf("empty question: %w", common.ErrSchemaViolation)
	}
	if len(out.Hints) < minHints || len(out.Hints) > maxHints {
		return fmt.Errorf("expected %d-%d hints, got %d: %w", minHints, maxHints, len(out.Hints), common.ErrSchemaViolation)
	}
	for i, h := range out.Hints {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("hint %d is empty: %w", i, common.ErrSchemaViolation)
		}
	}
	return nil
}

// GeneratedQuestion is the joined result of a question fetch. The field
// matching Generated (or both fields when "both") must be present.
type GeneratedQuestion struct {
	CodingQuestion     string        `json:"coding_question,omitempty"`
	CodingHints        []string      `json:"coding_hints,omitempty"`
	ConceptualQuestion string        `json:"conceptual_question,omitempty"`
	ConceptualHints    []string      `json:"conceptual_hints,omitempty"`
	Generated          GeneratedType `json:"question_type_generated"`
}

func (q GeneratedQuestion) Validate() error {
	switch q.Generated {
	case GeneratedCoding:
		if strings.TrimSpace(q.CodingQuestion) == "" {
			return fmt.Errorf("coding question missing: %w", common.ErrSchemaViolation)
		}
	case GeneratedConceptual:
		if strings.TrimSpace(q.ConceptualQuestion) == "" {
			return fmt.Errorf("conceptual question missing: %w", common.ErrSchemaViolation)
		}
	case GeneratedBoth:
		if strings.TrimSpace(q.CodingQuestion) == "" || strings.TrimSpace(q.ConceptualQuestion) == "" {
			return fmt.Errorf("both question types required: %w", common.ErrSchemaViolation)
		}
	default:
		return fmt.Errorf("unknown generated type %q: %w", q.Generated, common.ErrSchemaViolation)
	}
	return nil
}

// QuestionFor returns the question text for the given display type.
func (q GeneratedQuestion) QuestionFor(t model.QuestionType) string {
	if t == model.QuestionTypeCoding {
		return q.CodingQuestion
	}
	return q.ConceptualQuestion
}

// HintsFor returns the hints for the given display type.
func (q GeneratedQuestion) HintsFor(t model.QuestionType) []string {
	if t == model.QuestionTypeCoding {
		return q.CodingHints
	}
	return q.ConceptualHints
}

// ---- gradeCode ----

type GradeCodeInput struct {
	Code           string           `json:"code"`
	Topic          string           `json:"topic"`
	Difficulty     model.Difficulty `json:"difficulty"`
	ExpectedOutput string           `json:"expected_output,omitempty"`
}

func (in GradeCodeInput) Validate() error {
	if strings.TrimSpace(in.Code) == "" {
		return fmt.Errorf("code is required: %w", common.ErrBadRequest)
	}
	if strings.TrimSpace(in.Topic) == "" {
		return fmt.Errorf("topic is required: %w", common.ErrBadRequest)
	}
	if !in.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q: %w", in.Difficulty, common.ErrBadRequest)
	}
	return nil
}

// ---- gradeAnswer ----

type GradeAnswerInput struct {
	Question   string           `json:"question"`
	UserAnswer string           `json:"user_answer"`
	Topic      string           `json:"topic"`
	Difficulty model.Difficulty `json:"difficulty"`
}

func (in GradeAnswerInput) Validate() error {
	if strings.TrimSpace(in.Question) == "" {
		return fmt.Errorf("question is required: %w", common.ErrBadRequest)
	}
	if strings.TrimSpace(in.UserAnswer) == "" {
		return fmt.Errorf("answer is required: %w", common.ErrBadRequest)
	}
	if strings.TrimSpace(in.Topic) == "" {
		return fmt.Errorf("topic is required: %w", common.ErrBadRequest)
	}
	if !in.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q: %w", in.Difficulty, common.ErrBadRequest)
	}
	return nil
}

// GradingOutput is shared by gradeCode and gradeAnswer. The prompt instructs
// the model that passing means score >= PassingScore; a response where the
// two disagree is rejected as a policy violation rather than trusted.
type GradingOutput struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
	Passed   bool   `json:"passed"`
}

func (out GradingOutput) Validate() error {
	if out.Score < 0 || out.Score > 100 {
		return fmt.Errorf("score %d out of range [0,100]: %w", out.Score, common.ErrSchemaViolation)
	}
	if strings.TrimSpace(out.Feedback) == "" {
		return fmt.Errorf("empty feedback: %w", common.ErrSchemaViolation)
	}
	if out.Passed != (out.Score >= PassingScore) {
		return fmt.Errorf("passed=%t inconsistent with score=%d: %w", out.Passed, out.Score, common.ErrSchemaViolation)
	}
	return nil
}

// ---- generateSolution ----

type SolutionGenerationInput struct {
	Topic        string             `json:"topic"`
	Difficulty   model.Difficulty   `json:"difficulty"`
	Question     string             `json:"question"`
	QuestionType model.QuestionType `json:"question_type"`
}

func (in SolutionGenerationInput) Validate() error {
	if strings.TrimSpace(in.Topic) == "" || strings.TrimSpace(in.Question) == "" {
		return fmt.Errorf("topic and question are required: %w", common.ErrBadRequest)
	}
	if !in.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q: %w", in.Difficulty, common.ErrBadRequest)
	}
	if !in.QuestionType.Valid() {
		return fmt.Errorf("invalid question type %q: %w", in.QuestionType, common.ErrBadRequest)
	}
	return nil
}

type SolutionGenerationOutput struct {
	Solution    string `json:"solution"`
	Explanation string `json:"explanation"`
}

func (out SolutionGenerationOutput) Validate() error {
	if strings.TrimSpace(out.Solution) == "" {
		return fmt.Errorf("empty solution: %w", common.ErrSchemaViolation)
	}
	if strings.TrimSpace(out.Explanation) == "" {
		return fmt.Errorf("empty explanation: %w", common.ErrSchemaViolation)
	}
	return nil
}

// ---- generateTopic ----

type TopicGenerationInput struct {
	Difficulty model.Difficulty `json:"difficulty"`
}

func (in TopicGenerationInput) Validate() error {
	if !in.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q: %w", in.Difficulty, common.ErrBadRequest)
	}
	return nil
}

type TopicGenerationOutput struct {
	Topic string `json:"topic"`
}

func (out TopicGenerationOutput) Validate() error {
	if strings.TrimSpace(out.Topic) == "" {
		return fmt.Errorf("empty topic: %w", common.ErrSchemaViolation)
	}
	return nil
}

// ---- explainTopic ----

type TopicExplainerInput struct {
	Topic string `json:"topic"`
}

func (in TopicExplainerInput) Validate() error {
	if strings.TrimSpace(in.Topic) == "" {
		return fmt.Errorf("topic is required: %w", common.ErrBadRequest)
	}
	return nil
}

type CodeExample struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Title    string `json:"title,omitempty"`
}

type TopicExplainerOutput struct {
	Explanation        string        `json:"explanation"`
	CodeExamples       []CodeExample `json:"code_examples,omitempty"`
	DiagramDescription string        `json:"diagram_description,omitempty"`
	KeyConcepts        []string      `json:"key_concepts,omitempty"`
}

func (out TopicExplainerOutput) Validate() error {
	if strings.TrimSpace(out.Explanation) == "" {
		return fmt.Errorf("empty explanation: %w", common.ErrSchemaViolation)
	}
	for i, ex := range out.CodeExamples {
		if strings.TrimSpace(ex.Language) == "" || strings.TrimSpace(ex.Code) == "" {
			return fmt.Errorf("code example %d incomplete: %w", i, common.ErrSchemaViolation)
		}
	}
	return nil
}

// ---- conductInterviewTurn ----

type InterviewTurnInput struct {
	Topic               string                      `json:"topic"`
	Difficulty          model.Difficulty            `json:"difficulty"`
	ConversationHistory []model.ConversationMessage `json:"conversation_history"`
}

func (in InterviewTurnInput) Validate() error {
	if strings.TrimSpace(in.Topic) == "" {
		return fmt.Errorf("topic is required: %w", common.ErrBadRequest)
	}
	if !in.Difficulty.ValidForInterview() {
		return fmt.Errorf("invalid difficulty %q: %w", in.Difficulty, common.ErrBadRequest)
	}
	for i, msg := range in.ConversationHistory {
		if !msg.Role.Valid() {
			return fmt.Errorf("message %d has invalid role %q: %w", i, msg.Role, common.ErrBadRequest)
		}
		if len(msg.Parts) == 0 {
			return fmt.Errorf("message %d has no parts: %w", i, common.ErrBadRequest)
		}
	}
	return nil
}

type InterviewTurnOutput struct {
	AIResponseText string `json:"ai_response_text"`
}

func (out InterviewTurnOutput) Validate() error {
	if strings.TrimSpace(out.AIResponseText) == "" {
		return fmt.Errorf("empty interviewer response: %w", common.ErrSchemaViolation)
	}
	return nil
}

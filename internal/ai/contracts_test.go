package ai

import (
	"errors"
	"strings"
	"testing"

	"github.com/ydaher97/code-crafter/internal/common"
	"github.com/ydaher97/code-crafter/internal/domain/model"
)

func TestQuestionGenerationInputValidate(t *testing.T) {
	valid := QuestionGenerationInput{
		Topic:      "Closures",
		Difficulty: model.DifficultyBeginner,
		Type:       model.QuestionTypeCoding,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []QuestionGenerationInput{
		{Topic: "  ", Difficulty: model.DifficultyBeginner, Type: model.QuestionTypeCoding},
		{Topic: "Closures", Difficulty: "Impossible", Type: model.QuestionTypeCoding},
		{Topic: "Closures", Difficulty: model.DifficultyBeginner, Type: "riddle"},
		// Expert is an interview-only difficulty.
		{Topic: "Closures", Difficulty: model.DifficultyExpert, Type: model.QuestionTypeCoding},
	}
	for _, in := range cases {
		if err := in.Validate(); !errors.Is(err, common.ErrMissingParameters) {
			t.Errorf("expected ErrMissingParameters for %+v, got %v", in, err)
		}
	}
}

func TestQuestionGenerationOutputHintBounds(t *testing.T) {
	mk := func(hints ...string) QuestionGenerationOutput {
		return QuestionGenerationOutput{Question: "Implement LRU.", Hints: hints}
	}

	for _, out := range []QuestionGenerationOutput{
		mk("one"),
		mk("one", "two"),
		mk("one", "two", "three"),
	} {
		if err := out.Validate(); err != nil {
			t.Errorf("valid output rejected (%d hints): %v", len(out.Hints), err)
		}
	}

	for _, out := range []QuestionGenerationOutput{
		mk(),
		mk("one", "two", "three", "four"),
		mk("one", "  "),
		{Question: "  ", Hints: []string{"one"}},
	} {
		if err := out.Validate(); !errors.Is(err, common.ErrSchemaViolation) {
			t.Errorf("expected ErrSchemaViolation for %+v, got %v", out, err)
		}
	}
}

func TestGeneratedQuestionValidate(t *testing.T) {
	cases := []struct {
		name string
		q    GeneratedQuestion
		ok   bool
	}{
		{"coding present", GeneratedQuestion{CodingQuestion: "q", Generated: GeneratedCoding}, true},
		{"coding missing", GeneratedQuestion{Generated: GeneratedCoding}, false},
		{"conceptual present", GeneratedQuestion{ConceptualQuestion: "q", Generated: GeneratedConceptual}, true},
		{"conceptual missing", GeneratedQuestion{CodingQuestion: "q", Generated: GeneratedConceptual}, false},
		{"both present", GeneratedQuestion{CodingQuestion: "a", ConceptualQuestion: "b", Generated: GeneratedBoth}, true},
		{"both half missing", GeneratedQuestion{CodingQuestion: "a", Generated: GeneratedBoth}, false},
		{"unknown type", GeneratedQuestion{CodingQuestion: "a", Generated: "mystery"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, common.ErrSchemaViolation) {
				t.Fatalf("expected ErrSchemaViolation, got %v", err)
			}
		})
	}
}

func TestGradingOutputScorePassedConsistency(t *testing.T) {
	cases := []struct {
		score  int
		passed bool
		ok     bool
	}{
		{0, false, true},
		{59, false, true},
		{60, true, true}, // threshold is inclusive
		{100, true, true},
		{59, true, false},
		{60, false, false},
		{85, false, false},
		{-1, false, false},
		{101, true, false},
	}
	for _, tc := range cases {
		out := GradingOutput{Score: tc.score, Feedback: "feedback", Passed: tc.passed}
		err := out.Validate()
		if tc.ok && err != nil {
			t.Errorf("score=%d passed=%t: unexpected error %v", tc.score, tc.passed, err)
		}
		if !tc.ok && !errors.Is(err, common.ErrSchemaViolation) {
			t.Errorf("score=%d passed=%t: expected ErrSchemaViolation, got %v", tc.score, tc.passed, err)
		}
	}

	empty := GradingOutput{Score: 80, Feedback: "   ", Passed: true}
	if err := empty.Validate(); !errors.Is(err, common.ErrSchemaViolation) {
		t.Errorf("empty feedback must be rejected, got %v", err)
	}
}

func TestSolutionGenerationOutputValidate(t *testing.T) {
	ok := SolutionGenerationOutput{Solution: "func f() {}", Explanation: "does nothing"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid output rejected: %v", err)
	}
	for _, out := range []SolutionGenerationOutput{
		{Solution: "", Explanation: "x"},
		{Solution: "x", Explanation: ""},
	} {
		if err := out.Validate(); !errors.Is(err, common.ErrSchemaViolation) {
			t.Errorf("expected ErrSchemaViolation for %+v, got %v", out, err)
		}
	}
}

func TestTopicExplainerOutputValidate(t *testing.T) {
	ok := TopicExplainerOutput{
		Explanation:  "Closures capture scope.",
		CodeExamples: []CodeExample{{Language: "go", Code: "func() {}"}},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid output rejected: %v", err)
	}

	broken := TopicExplainerOutput{
		Explanation:  "fine",
		CodeExamples: []CodeExample{{Language: "go", Code: "  "}},
	}
	if err := broken.Validate(); !errors.Is(err, common.ErrSchemaViolation) {
		t.Errorf("incomplete code example must be rejected, got %v", err)
	}
}

func TestInterviewTurnInputValidate(t *testing.T) {
	valid := InterviewTurnInput{
		Topic:      "System Design",
		Difficulty: model.DifficultyExpert,
		ConversationHistory: []model.ConversationMessage{
			{Role: model.RoleInterviewer, Parts: []model.MessagePart{{Text: "hi"}}},
			{Role: model.RoleInterviewee, Parts: []model.MessagePart{{Text: "hello"}}},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	// All four difficulties are allowed for interviews, Expert included.
	for _, d := range []model.Difficulty{
		model.DifficultyBeginner, model.DifficultyIntermediate,
		model.DifficultyAdvanced, model.DifficultyExpert,
	} {
		in := InterviewTurnInput{Topic: "Go", Difficulty: d}
		if err := in.Validate(); err != nil {
			t.Errorf("difficulty %q rejected: %v", d, err)
		}
	}

	badRole := valid
	badRole.ConversationHistory = []model.ConversationMessage{
		{Role: "assistant", Parts: []model.MessagePart{{Text: "hi"}}},
	}
	if err := badRole.Validate(); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for bad role, got %v", err)
	}

	noParts := valid
	noParts.ConversationHistory = []model.ConversationMessage{{Role: model.RoleInterviewee}}
	if err := noParts.Validate(); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for empty parts, got %v", err)
	}
}

func TestValidationErrorsNameTheField(t *testing.T) {
	err := QuestionGenerationInput{Difficulty: model.DifficultyBeginner, Type: model.QuestionTypeCoding}.Validate()
	if err == nil || !strings.Contains(err.Error(), "topic") {
		t.Errorf("error should name the missing field, got %v", err)
	}
}

// Package gemini implements the AI gateway on Google Gemini. Every call
// requests strict JSON output, decodes it into the typed contract and
// validates the shape before handing it upstream.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ydaher97/code-crafter/internal/ai"
	"github.com/ydaher97/code-crafter/internal/common"
	"github.com/ydaher97/code-crafter/internal/domain/model"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type Engine struct {
	apiKey string
	model  string
}

var _ ai.Gateway = (*Engine)(nil)

func New(apiKey, model string) *Engine {
	return &Engine{
		apiKey: strings.TrimSpace(apiKey),
		model:  strings.TrimSpace(model),
	}
}

// generate performs one JSON-mode call and decodes the reply into out.
// The gateway never retries; transient upstream overload is classified so
// callers can offer a manual retry.
func (e *Engine) generate(ctx context.Context, system, schema, user string, out interface{}) error {
	if e.apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is empty: %w", common.ErrUpstreamError)
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return fmt.Errorf("gemini client: %v: %w", err, common.ErrUpstreamError)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{
			genai.Text(system),
			genai.Text("\n" + schema),
		},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return classify(err)
	}
	txt := firstText(resp)
	if txt == "" {
		return fmt.Errorf("gemini: empty response: %w", common.ErrSchemaViolation)
	}
	txt = stripCodeFences(strings.TrimSpace(txt))

	if err := json.Unmarshal([]byte(txt), out); err != nil {
		return fmt.Errorf("gemini: bad JSON: %v: %w", err, common.ErrSchemaViolation)
	}
	return nil
}

// classify maps transport failures to the gateway error taxonomy. Overload
// and rate-limit responses are transient and retry-eligible.
func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == 503 || gerr.Code == 429 {
			return fmt.Errorf("gemini: %v: %w", err, common.ErrUpstreamUnavailable)
		}
		return fmt.Errorf("gemini: %v: %w", err, common.ErrUpstreamError)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "503") || strings.Contains(msg, "unavailable") || strings.Contains(msg, "overloaded") {
		return fmt.Errorf("gemini: %v: %w", err, common.ErrUpstreamUnavailable)
	}
	return fmt.Errorf("gemini: %v: %w", err, common.ErrUpstreamError)
}

func (e *Engine) GenerateQuestion(ctx context.Context, in ai.QuestionGenerationInput) (ai.QuestionGenerationOutput, error) {
	var out ai.QuestionGenerationOutput
	if err := in.Validate(); err != nil {
		return out, err
	}
	user := fmt.Sprintf("Question type: %s\nTopic: %s\nDifficulty: %s", in.Type, in.Topic, in.Difficulty)
	if err := e.generate(ctx, questionSystem, questionSchema, user, &out); err != nil {
		return ai.QuestionGenerationOutput{}, err
	}
	if err := out.Validate(); err != nil {
		return ai.QuestionGenerationOutput{}, err
	}
	return out, nil
}

func (e *Engine) GradeCode(ctx context.Context, in ai.GradeCodeInput) (ai.GradingOutput, error) {
	var out ai.GradingOutput
	if err := in.Validate(); err != nil {
		return out, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\nDifficulty: %s\nCode:\n```\n%s\n```\n", in.Topic, in.Difficulty, in.Code)
	if in.ExpectedOutput != "" {
		fmt.Fprintf(&b, "Expected Output:\n```\n%s\n```\n", in.ExpectedOutput)
	}
	if err := e.generate(ctx, gradeCodeSystem, gradingSchema, b.String(), &out); err != nil {
		return ai.GradingOutput{}, err
	}
	if err := out.Validate(); err != nil {
		return ai.GradingOutput{}, err
	}
	return out, nil
}

func (e *Engine) GradeAnswer(ctx context.Context, in ai.GradeAnswerInput) (ai.GradingOutput, error) {
	var out ai.GradingOutput
	if err := in.Validate(); err != nil {
		return out, err
	}
	user := fmt.Sprintf("Topic: %s\nDifficulty: %s\nQuestion:\n%s\n\nUser's Answer:\n%s",
		in.Topic, in.Difficulty, in.Question, in.UserAnswer)
	if err := e.generate(ctx, gradeAnswerSystem, gradingSchema, user, &out); err != nil {
		return ai.GradingOutput{}, err
	}
	if err := out.Validate(); err != nil {
		return ai.GradingOutput{}, err
	}
	return out, nil
}

func (e *Engine) GenerateSolution(ctx context.Context, in ai.SolutionGenerationInput) (ai.SolutionGenerationOutput, error) {
	var out ai.SolutionGenerationOutput
	if err := in.Validate(); err != nil {
		return out, err
	}
	user := fmt.Sprintf("Topic: %s\nDifficulty: %s\nQuestion Type: %s\nQuestion:\n%s",
		in.Topic, in.Difficulty, in.QuestionType, in.Question)
	if err := e.generate(ctx, solutionSystem, solutionSchema, user, &out); err != nil {
		return ai.SolutionGenerationOutput{}, err
	}
	if err := out.Validate(); err != nil {
		return ai.SolutionGenerationOutput{}, err
	}
	return out, nil
}

func (e *Engine) GenerateTopic(ctx context.Context, in ai.TopicGenerationInput) (ai.TopicGenerationOutput, error) {
	var out ai.TopicGenerationOutput
	if err := in.Validate(); err != nil {
		return out, err
	}
	user := fmt.Sprintf("Difficulty: %s", in.Difficulty)
	if err := e.generate(ctx, topicSystem, topicSchema, user, &out); err != nil {
		return ai.TopicGenerationOutput{}, err
	}
	if err := out.Validate(); err != nil {
		return ai.TopicGenerationOutput{}, err
	}
	return out, nil
}

func (e *Engine) ExplainTopic(ctx context.Context, in ai.TopicExplainerInput) (ai.TopicExplainerOutput, error) {
	var out ai.TopicExplainerOutput
	if err := in.Validate(); err != nil {
		return out, err
	}
	user := fmt.Sprintf("Topic to explain: %s", in.Topic)
	if err := e.generate(ctx, explainerSystem, explainerSchema, user, &out); err != nil {
		return ai.TopicExplainerOutput{}, err
	}
	if err := out.Validate(); err != nil {
		return ai.TopicExplainerOutput{}, err
	}
	return out, nil
}

func (e *Engine) ConductInterviewTurn(ctx context.Context, in ai.InterviewTurnInput) (ai.InterviewTurnOutput, error) {
	var out ai.InterviewTurnOutput
	if err := in.Validate(); err != nil {
		return out, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\nDifficulty: %s\n\nConversation History:\n", in.Topic, in.Difficulty)
	if len(in.ConversationHistory) == 0 {
		b.WriteString("(No conversation history yet. This is the start of the interview.)\n")
	} else {
		for _, msg := range in.ConversationHistory {
			speaker := "Candidate"
			if msg.Role == model.RoleInterviewer {
				speaker = "Interviewer"
			}
			for _, part := range msg.Parts {
				fmt.Fprintf(&b, "%s: %s\n", speaker, part.Text)
			}
		}
	}
	b.WriteString("\nBased on the above, what is your next question for the candidate?")
	if err := e.generate(ctx, interviewSystem, interviewSchema, b.String(), &out); err != nil {
		return ai.InterviewTurnOutput{}, err
	}
	if err := out.Validate(); err != nil {
		return ai.InterviewTurnOutput{}, err
	}
	return out, nil
}

// --------------------------- helpers ---------------------------

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func ptrFloat32(v float32) *float32 { return &v }

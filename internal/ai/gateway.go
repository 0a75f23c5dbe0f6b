package ai

import "context"

// Gateway is the boundary to the hosted language model. Implementations are
// stateless; every method validates its input before calling upstream and
// validates the response before returning it. Failures are classified with
// the common error sentinels (ErrUpstreamUnavailable, ErrUpstreamError,
// ErrSchemaViolation). The gateway never retries; retry is a caller policy.
type Gateway interface {
	GenerateQuestion(ctx context.Context, in QuestionGenerationInput) (QuestionGenerationOutput, error)
	GradeCode(ctx context.Context, in GradeCodeInput) (GradingOutput, error)
	GradeAnswer(ctx context.Context, in GradeAnswerInput) (GradingOutput, error)
	GenerateSolution(ctx context.Context, in SolutionGenerationInput) (SolutionGenerationOutput, error)
	GenerateTopic(ctx context.Context, in TopicGenerationInput) (TopicGenerationOutput, error)
	ExplainTopic(ctx context.Context, in TopicExplainerInput) (TopicExplainerOutput, error)
	ConductInterviewTurn(ctx context.Context, in InterviewTurnInput) (InterviewTurnOutput, error)
}

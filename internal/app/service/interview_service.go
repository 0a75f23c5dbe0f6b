package service

import (
	"context"

	"github.com/ydaher97/code-crafter/internal/ai"
	"github.com/ydaher97/code-crafter/internal/domain/model"
)

// InterviewService requests the next interviewer turn for a transcript. It
// holds no state of its own: the caller owns transcript accumulation and the
// full transcript is forwarded to the gateway unmodified, in order. The
// prompt instructs the model to open with a greeting question on an empty
// transcript and never to greet again once history exists.
type InterviewService struct {
	gateway ai.Gateway
}

func NewInterviewService(gateway ai.Gateway) *InterviewService {
	return &InterviewService{gateway: gateway}
}

func (s *InterviewService) NextTurn(ctx context.Context, topic string, difficulty model.Difficulty, transcript []model.ConversationMessage) (string, error) {
	out, err := s.gateway.ConductInterviewTurn(ctx, ai.InterviewTurnInput{
		Topic:               topic,
		Difficulty:          difficulty,
		ConversationHistory: transcript,
	})
	if err != nil {
		return "", err
	}
	return out.AIResponseText, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/ydaher97/code-crafter/internal/ai"
	"github.com/ydaher97/code-crafter/internal/common"
	"github.com/ydaher97/code-crafter/internal/domain/model"
)

func TestNextTurnForwardsTranscriptUnmodified(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewInterviewService(gw)

	transcript := []model.ConversationMessage{
		{Role: model.RoleInterviewer, Parts: []model.MessagePart{{Text: "Hello, shall we begin?"}}},
		{Role: model.RoleInterviewee, Parts: []model.MessagePart{{Text: "Yes, ready."}}},
		{Role: model.RoleInterviewer, Parts: []model.MessagePart{{Text: "Explain event loops."}}},
		{Role: model.RoleInterviewee, Parts: []model.MessagePart{{Text: "They process the task queue."}}},
	}
	reply, err := svc.NextTurn(context.Background(), "JavaScript", model.DifficultyExpert, transcript)
	if err != nil {
		t.Fatalf("NextTurn failed: %v", err)
	}
	if reply == "" {
		t.Fatal("expected a non-empty interviewer reply")
	}
	if len(gw.interviewCalls) != 1 {
		t.Fatalf("expected 1 gateway call, got %d", len(gw.interviewCalls))
	}
	call := gw.interviewCalls[0]
	if call.Topic != "JavaScript" || call.Difficulty != model.DifficultyExpert {
		t.Errorf("parameters mangled: %+v", call)
	}
	if !reflect.DeepEqual(call.ConversationHistory, transcript) {
		t.Errorf("transcript must be forwarded unmodified:\n got  %+v\n want %+v", call.ConversationHistory, transcript)
	}
}

func TestNextTurnEmptyTranscriptOpensInterview(t *testing.T) {
	gw := &fakeGateway{
		interviewFn: func(in ai.InterviewTurnInput) (ai.InterviewTurnOutput, error) {
			if len(in.ConversationHistory) != 0 {
				t.Errorf("expected empty transcript, got %d messages", len(in.ConversationHistory))
			}
			return ai.InterviewTurnOutput{AIResponseText: "Welcome! Let's start with goroutines."}, nil
		},
	}
	svc := NewInterviewService(gw)

	reply, err := svc.NextTurn(context.Background(), "Go Concurrency", model.DifficultyAdvanced, nil)
	if err != nil {
		t.Fatalf("NextTurn failed: %v", err)
	}
	if reply != "Welcome! Let's start with goroutines." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestNextTurnPropagatesGatewayFailure(t *testing.T) {
	gw := &fakeGateway{
		interviewFn: func(ai.InterviewTurnInput) (ai.InterviewTurnOutput, error) {
			return ai.InterviewTurnOutput{}, fmt.Errorf("overloaded: %w", common.ErrUpstreamUnavailable)
		},
	}
	svc := NewInterviewService(gw)

	_, err := svc.NextTurn(context.Background(), "SQL", model.DifficultyIntermediate, nil)
	if !errors.Is(err, common.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

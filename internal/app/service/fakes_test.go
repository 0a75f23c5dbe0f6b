package service

import (
	"context"
	"sync"
	"time"

	"github.com/ydaher97/code-crafter/internal/ai"
	"github.com/ydaher97/code-crafter/internal/domain/model"
)

// fakeGateway lets each test script gateway behavior per operation and
// records how often each operation was invoked.
type fakeGateway struct {
	mu sync.Mutex

	generateQuestionFn func(ai.QuestionGenerationInput) (ai.QuestionGenerationOutput, error)
	gradeCodeFn        func(ai.GradeCodeInput) (ai.GradingOutput, error)
	gradeAnswerFn      func(ai.GradeAnswerInput) (ai.GradingOutput, error)
	generateSolutionFn func(ai.SolutionGenerationInput) (ai.SolutionGenerationOutput, error)
	generateTopicFn    func(ai.TopicGenerationInput) (ai.TopicGenerationOutput, error)
	explainTopicFn     func(ai.TopicExplainerInput) (ai.TopicExplainerOutput, error)
	interviewFn        func(ai.InterviewTurnInput) (ai.InterviewTurnOutput, error)

	questionCalls  []ai.QuestionGenerationInput
	gradeCodeCalls int
	gradeAnsCalls  int
	solutionCalls  int
	topicCalls     int
	explainCalls   int
	interviewCalls []ai.InterviewTurnInput
}

func (g *fakeGateway) GenerateQuestion(ctx context.Context, in ai.QuestionGenerationInput) (ai.QuestionGenerationOutput, error) {
	g.mu.Lock()
	g.questionCalls = append(g.questionCalls, in)
	g.mu.Unlock()
	if g.generateQuestionFn != nil {
		return g.generateQuestionFn(in)
	}
	return ai.QuestionGenerationOutput{
		Question: "What does a closure capture in " + in.Topic + "?",
		Hints:    []string{"Think about scope."},
	}, nil
}

func (g *fakeGateway) GradeCode(ctx context.Context, in ai.GradeCodeInput) (ai.GradingOutput, error) {
	g.mu.Lock()
	g.gradeCodeCalls++
	g.mu.Unlock()
	if g.gradeCodeFn != nil {
		return g.gradeCodeFn(in)
	}
	return ai.GradingOutput{Score: 80, Feedback: "Good work", Passed: true}, nil
}

func (g *fakeGateway) GradeAnswer(ctx context.Context, in ai.GradeAnswerInput) (ai.GradingOutput, error) {
	g.mu.Lock()
	g.gradeAnsCalls++
	g.mu.Unlock()
	if g.gradeAnswerFn != nil {
		return g.gradeAnswerFn(in)
	}
	return ai.GradingOutput{Score: 80, Feedback: "Good answer", Passed: true}, nil
}

func (g *fakeGateway) GenerateSolution(ctx context.Context, in ai.SolutionGenerationInput) (ai.SolutionGenerationOutput, error) {
	g.mu.Lock()
	g.solutionCalls++
	g.mu.Unlock()
	if g.generateSolutionFn != nil {
		return g.generateSolutionFn(in)
	}
	return ai.SolutionGenerationOutput{Solution: "function x() { return 1 }", Explanation: "Returns one."}, nil
}

func (g *fakeGateway) GenerateTopic(ctx context.Context, in ai.TopicGenerationInput) (ai.TopicGenerationOutput, error) {
	g.mu.Lock()
	g.topicCalls++
	g.mu.Unlock()
	if g.generateTopicFn != nil {
		return g.generateTopicFn(in)
	}
	return ai.TopicGenerationOutput{Topic: "JavaScript Closures"}, nil
}

func (g *fakeGateway) ExplainTopic(ctx context.Context, in ai.TopicExplainerInput) (ai.TopicExplainerOutput, error) {
	g.mu.Lock()
	g.explainCalls++
	g.mu.Unlock()
	if g.explainTopicFn != nil {
		return g.explainTopicFn(in)
	}
	return ai.TopicExplainerOutput{Explanation: "An explanation."}, nil
}

func (g *fakeGateway) ConductInterviewTurn(ctx context.Context, in ai.InterviewTurnInput) (ai.InterviewTurnOutput, error) {
	g.mu.Lock()
	g.interviewCalls = append(g.interviewCalls, in)
	g.mu.Unlock()
	if g.interviewFn != nil {
		return g.interviewFn(in)
	}
	return ai.InterviewTurnOutput{AIResponseText: "Tell me about yourself."}, nil
}

// memHistoryRepo is an in-memory HistoryRepository.
type memHistoryRepo struct {
	mu        sync.Mutex
	entries   []model.ChallengeHistoryEntry
	appendErr error
}

func (r *memHistoryRepo) Append(ctx context.Context, entry *model.ChallengeHistoryEntry) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return "", r.appendErr
	}
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return entry.ID, nil
}

func (r *memHistoryRepo) Query(ctx context.Context, userID string, filter model.HistoryFilter) ([]model.ChallengeHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ChallengeHistoryEntry
	for i := len(r.entries) - 1; i >= 0; i-- { // newest first
		e := r.entries[i]
		if e.UserID != userID {
			continue
		}
		if filter.Topic != "" && e.Topic != filter.Topic {
			continue
		}
		if filter.Difficulty != "" && e.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Passed != nil && e.GradingResult.Passed != *filter.Passed {
			continue
		}
		if filter.QuestionType != "" && e.QuestionType != filter.QuestionType {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memHistoryRepo) CountPassed(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, e := range r.entries {
		if e.UserID == userID && e.GradingResult.Passed {
			count++
		}
	}
	return count, nil
}

func (r *memHistoryRepo) CountPassedByDifficulty(ctx context.Context, userID string, difficulty model.Difficulty) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, e := range r.entries {
		if e.UserID == userID && e.Difficulty == difficulty && e.GradingResult.Passed {
			count++
		}
	}
	return count, nil
}

// memAchievementRepo is an in-memory AchievementRepository.
type memAchievementRepo struct {
	mu     sync.Mutex
	earned []model.UserAchievement
}

func (r *memAchievementRepo) Exists(ctx context.Context, userID, achievementID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ua := range r.earned {
		if ua.UserID == userID && ua.AchievementID == achievementID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAchievementRepo) Create(ctx context.Context, ua *model.UserAchievement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ua.EarnedAt = time.Now()
	r.earned = append(r.earned, *ua)
	return nil
}

func (r *memAchievementRepo) ListByUser(ctx context.Context, userID string) ([]model.UserAchievement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.UserAchievement
	for i := len(r.earned) - 1; i >= 0; i-- {
		if r.earned[i].UserID == userID {
			out = append(out, r.earned[i])
		}
	}
	return out, nil
}

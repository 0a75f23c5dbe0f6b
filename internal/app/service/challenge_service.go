package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/ydaher97/code-crafter/internal/ai"
	"github.com/ydaher97/code-crafter/internal/common"
	"github.com/ydaher97/code-crafter/internal/domain/model"
	"github.com/ydaher97/code-crafter/internal/domain/repository"

	"github.com/google/uuid"
)

// SessionState is the single tagged state driving one practice session.
// Modeling it as one enum (instead of independent loading flags) makes
// impossible combinations unrepresentable.
type SessionState string

const (
	StateIdle            SessionState = "idle"
	StateQuestionLoading SessionState = "question_loading"
	StateQuestionReady   SessionState = "question_ready"
	StateSubmitting      SessionState = "submitting"
	StateGraded          SessionState = "graded"
	StateSolutionLoading SessionState = "solution_loading"
	StateSolutionReady   SessionState = "solution_ready"
	StateSolutionFailed  SessionState = "solution_failed"
)

// ChallengeSession is one user's in-flight practice session. Parameters are
// immutable for the session's lifetime. The epoch counter increments on every
// restart or teardown so responses from superseded gateway calls can be
// recognized and discarded instead of being applied to a torn-down session.
type ChallengeSession struct {
	ID     string
	UserID string
	Params model.ChallengeParameters

	mu                sync.Mutex
	epoch             uint64
	state             SessionState
	question          *ai.GeneratedQuestion
	activeDisplayType model.QuestionType
	grading           *model.GradingResult
	solution          *model.GeneratedSolution
	solutionErr       string
	persistErr        string
}

// SessionView is the handler-facing snapshot of a session.
type SessionView struct {
	ID                string                    `json:"id"`
	State             SessionState              `json:"state"`
	Params            model.ChallengeParameters `json:"params"`
	Question          string                    `json:"question,omitempty"`
	Hints             []string                  `json:"hints,omitempty"`
	GeneratedType     ai.GeneratedType          `json:"question_type_generated,omitempty"`
	ActiveDisplayType model.QuestionType        `json:"active_display_type,omitempty"`
	GradingResult     *model.GradingResult      `json:"grading_result,omitempty"`
	GeneratedSolution *model.GeneratedSolution  `json:"generated_solution,omitempty"`
	SolutionError     string                    `json:"solution_error,omitempty"`
	PersistError      string                    `json:"persist_error,omitempty"`
}

// SubmitResult carries everything one submission produced. PersistError and
// SolutionError are non-blocking: the grading result stands even when the
// solution fetch or the history write failed.
type SubmitResult struct {
	GradingResult     model.GradingResult      `json:"grading_result"`
	GeneratedSolution *model.GeneratedSolution `json:"generated_solution,omitempty"`
	SolutionError     string                   `json:"solution_error,omitempty"`
	PersistError      string                   `json:"persist_error,omitempty"`
	HistoryEntryID    string                   `json:"history_entry_id,omitempty"`
	AwardedBadges     []model.UserAchievement  `json:"awarded_badges,omitempty"`
}

type ChallengeService struct {
	gateway        ai.Gateway
	historyRepo    repository.HistoryRepository
	achievementSvc *AchievementService

	mu       sync.Mutex
	sessions map[string]*ChallengeSession
}

func NewChallengeService(gateway ai.Gateway, historyRepo repository.HistoryRepository, achievementSvc *AchievementService) *ChallengeService {
	return &ChallengeService{
		gateway:        gateway,
		historyRepo:    historyRepo,
		achievementSvc: achievementSvc,
		sessions:       make(map[string]*ChallengeSession),
	}
}

// StartSession validates the parameters, creates a session and fetches its
// question. Missing parameters fail synchronously with no gateway call.
func (s *ChallengeService) StartSession(ctx context.Context, userID string, params model.ChallengeParameters) (*SessionView, error) {
	if strings.TrimSpace(params.Topic) == "" || !params.Difficulty.Valid() || !params.Preference.Valid() {
		return nil, fmt.Errorf("topic, difficulty and question type are all required: %w", common.ErrMissingParameters)
	}

	sess := &ChallengeSession{
		ID:     uuid.NewString(),
		UserID: userID,
		Params: params,
		state:  StateIdle,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	if err := s.fetchQuestion(ctx, sess); err != nil {
		// The caller never sees the session ID on a failed start, so an
		// Idle entry left behind would be unreachable. Deregister it.
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
		return nil, err
	}
	return sess.view(), nil
}

// GetSession returns the current snapshot of an owned session.
func (s *ChallengeService) GetSession(userID, sessionID string) (*SessionView, error) {
	sess, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.view(), nil
}

// Restart re-enters question loading with the same parameters, generating a
// fresh question. Any late response from a prior fetch is discarded.
func (s *ChallengeService) Restart(ctx context.Context, userID, sessionID string) (*SessionView, error) {
	sess, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.fetchQuestion(ctx, sess); err != nil {
		return nil, err
	}
	return sess.view(), nil
}

// Teardown discards all session state. Responses from any in-flight gateway
// call for this session will be ignored.
func (s *ChallengeService) Teardown(userID, sessionID string) error {
	sess, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.epoch++
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// SwitchDisplayType flips which half of a "both" question is shown. Switching
// resets draft, grading and solution state on both sides; there is no per-tab
// draft retention.
func (s *ChallengeService) SwitchDisplayType(userID, sessionID string, newType model.QuestionType) (*SessionView, error) {
	sess, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !newType.Valid() {
		return nil, fmt.Errorf("invalid display type %q: %w", newType, common.ErrBadRequest)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.question == nil || sess.question.Generated != ai.GeneratedBoth {
		return nil, fmt.Errorf("display type can only be switched on a both-type challenge: %w", common.ErrBadRequest)
	}
	switch sess.state {
	case StateQuestionLoading, StateSubmitting, StateSolutionLoading:
		return nil, fmt.Errorf("cannot switch display type while an operation is in flight: %w", common.ErrConflict)
	}
	sess.activeDisplayType = newType
	sess.resetResultLocked()
	sess.state = StateQuestionReady
	return sess.viewLocked(), nil
}

// Submit grades the user's solution for the active display type, fetches a
// reference solution when the grade is failing, persists the attempt exactly
// once, and evaluates achievements on a passing persisted attempt.
func (s *ChallengeService) Submit(ctx context.Context, userID, sessionID, solutionText string) (*SubmitResult, error) {
	sess, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.question == nil {
		sess.mu.Unlock()
		return nil, fmt.Errorf("no question to grade: %w", common.ErrBadRequest)
	}
	switch sess.state {
	case StateQuestionLoading, StateSubmitting, StateSolutionLoading:
		sess.mu.Unlock()
		return nil, fmt.Errorf("a submission is already in flight: %w", common.ErrConflict)
	}
	displayType := sess.activeDisplayType
	if strings.TrimSpace(solutionText) == "" {
		sess.mu.Unlock()
		if displayType == model.QuestionTypeCoding {
			return nil, fmt.Errorf("code is empty, write your code before submitting: %w", common.ErrBadRequest)
		}
		return nil, fmt.Errorf("answer is empty, write your answer before submitting: %w", common.ErrBadRequest)
	}

	epoch := sess.epoch
	question := sess.question.QuestionFor(displayType)
	params := sess.Params
	sess.resetResultLocked()
	sess.state = StateSubmitting
	sess.mu.Unlock()

	grading, err := s.grade(ctx, params, displayType, question, solutionText)
	if err != nil {
		sess.applyIfCurrent(epoch, func() {
			sess.state = StateQuestionReady
		})
		// Grading failed: nothing is persisted, the user may resubmit.
		return nil, err
	}

	result := &SubmitResult{GradingResult: grading}
	applied := sess.applyIfCurrent(epoch, func() {
		sess.grading = &grading
		sess.state = StateGraded
	})
	if !applied {
		return nil, fmt.Errorf("session was restarted during grading: %w", common.ErrConflict)
	}

	// A reference solution is fetched only for failing grades. Its failure
	// does not disturb the grading result.
	if !grading.Passed {
		sess.applyIfCurrent(epoch, func() { sess.state = StateSolutionLoading })
		solution, solErr := s.gateway.GenerateSolution(ctx, ai.SolutionGenerationInput{
			Topic:        params.Topic,
			Difficulty:   params.Difficulty,
			Question:     question,
			QuestionType: displayType,
		})
		if solErr != nil {
			log.Printf("Solution generation failed for session %s: %v", sess.ID, solErr)
			result.SolutionError = common.UserMessageFromError(solErr)
			sess.applyIfCurrent(epoch, func() {
				sess.solutionErr = result.SolutionError
				sess.state = StateSolutionFailed
			})
		} else {
			result.GeneratedSolution = &model.GeneratedSolution{
				Solution:    solution.Solution,
				Explanation: solution.Explanation,
			}
			sess.applyIfCurrent(epoch, func() {
				sess.solution = result.GeneratedSolution
				sess.state = StateSolutionReady
			})
		}
	}

	// Persist the attempt exactly once per submission, pass or fail. A
	// persistence failure is reported separately and does not roll back the
	// grading result shown to the user.
	entry := &model.ChallengeHistoryEntry{
		ID:                uuid.NewString(),
		UserID:            userID,
		Topic:             params.Topic,
		Difficulty:        params.Difficulty,
		QuestionType:      displayType,
		Question:          question,
		UserSolution:      solutionText,
		GradingResult:     grading,
		GeneratedSolution: result.GeneratedSolution,
	}
	if _, persistErr := s.historyRepo.Append(ctx, entry); persistErr != nil {
		log.Printf("Failed to save history for session %s: %v", sess.ID, persistErr)
		result.PersistError = common.UserMessageFromError(persistErr)
		sess.applyIfCurrent(epoch, func() { sess.persistErr = result.PersistError })
	} else {
		result.HistoryEntryID = entry.ID
		if grading.Passed {
			awarded, evalErr := s.achievementSvc.Evaluate(ctx, userID, entry)
			if evalErr != nil {
				log.Printf("Achievement evaluation failed for user %s: %v", userID, evalErr)
			}
			result.AwardedBadges = awarded
		}
	}

	return result, nil
}

// grade dispatches to the code or answer grading operation by display type.
func (s *ChallengeService) grade(ctx context.Context, params model.ChallengeParameters, displayType model.QuestionType, question, solutionText string) (model.GradingResult, error) {
	var out ai.GradingOutput
	var err error
	if displayType == model.QuestionTypeCoding {
		out, err = s.gateway.GradeCode(ctx, ai.GradeCodeInput{
			Code:       solutionText,
			Topic:      params.Topic,
			Difficulty: params.Difficulty,
		})
	} else {
		out, err = s.gateway.GradeAnswer(ctx, ai.GradeAnswerInput{
			Question:   question,
			UserAnswer: solutionText,
			Topic:      params.Topic,
			Difficulty: params.Difficulty,
		})
	}
	if err != nil {
		return model.GradingResult{}, err
	}
	return model.GradingResult{Score: out.Score, Feedback: out.Feedback, Passed: out.Passed}, nil
}

// fetchQuestion runs the question generation for the session's parameters.
// A "both" preference fans out into two concurrent generations that are
// joined; either failing fails the whole fetch.
func (s *ChallengeService) fetchQuestion(ctx context.Context, sess *ChallengeSession) error {
	sess.mu.Lock()
	switch sess.state {
	case StateQuestionLoading, StateSubmitting, StateSolutionLoading:
		sess.mu.Unlock()
		return fmt.Errorf("an operation is already in flight: %w", common.ErrConflict)
	}
	sess.epoch++
	epoch := sess.epoch
	sess.question = nil
	sess.resetResultLocked()
	sess.state = StateQuestionLoading
	sess.mu.Unlock()

	question, err := s.generateFor(ctx, sess.Params)
	if err != nil {
		sess.applyIfCurrent(epoch, func() { sess.state = StateIdle })
		return err
	}
	if err := question.Validate(); err != nil {
		sess.applyIfCurrent(epoch, func() { sess.state = StateIdle })
		return err
	}

	applied := sess.applyIfCurrent(epoch, func() {
		sess.question = &question
		if question.Generated == ai.GeneratedConceptual {
			sess.activeDisplayType = model.QuestionTypeConceptual
		} else {
			sess.activeDisplayType = model.QuestionTypeCoding
		}
		sess.state = StateQuestionReady
	})
	if !applied {
		return fmt.Errorf("session was restarted during question fetch: %w", common.ErrConflict)
	}
	return nil
}

func (s *ChallengeService) generateFor(ctx context.Context, params model.ChallengeParameters) (ai.GeneratedQuestion, error) {
	switch params.Preference {
	case model.PreferCoding:
		out, err := s.gateway.GenerateQuestion(ctx, ai.QuestionGenerationInput{
			Topic: params.Topic, Difficulty: params.Difficulty, Type: model.QuestionTypeCoding,
		})
		if err != nil {
			return ai.GeneratedQuestion{}, err
		}
		return ai.GeneratedQuestion{
			CodingQuestion: out.Question,
			CodingHints:    out.Hints,
			Generated:      ai.GeneratedCoding,
		}, nil

	case model.PreferConceptual:
		out, err := s.gateway.GenerateQuestion(ctx, ai.QuestionGenerationInput{
			Topic: params.Topic, Difficulty: params.Difficulty, Type: model.QuestionTypeConceptual,
		})
		if err != nil {
			return ai.GeneratedQuestion{}, err
		}
		return ai.GeneratedQuestion{
			ConceptualQuestion: out.Question,
			ConceptualHints:    out.Hints,
			Generated:          ai.GeneratedConceptual,
		}, nil

	default: // both: concurrent fan-out, joined
		var wg sync.WaitGroup
		var codingOut, conceptualOut ai.QuestionGenerationOutput
		var codingErr, conceptualErr error

		wg.Add(2)
		go func() {
			defer wg.Done()
			codingOut, codingErr = s.gateway.GenerateQuestion(ctx, ai.QuestionGenerationInput{
				Topic: params.Topic, Difficulty: params.Difficulty, Type: model.QuestionTypeCoding,
			})
		}()
		go func() {
			defer wg.Done()
			conceptualOut, conceptualErr = s.gateway.GenerateQuestion(ctx, ai.QuestionGenerationInput{
				Topic: params.Topic, Difficulty: params.Difficulty, Type: model.QuestionTypeConceptual,
			})
		}()
		wg.Wait()

		if codingErr != nil {
			return ai.GeneratedQuestion{}, codingErr
		}
		if conceptualErr != nil {
			return ai.GeneratedQuestion{}, conceptualErr
		}
		return ai.GeneratedQuestion{
			CodingQuestion:     codingOut.Question,
			CodingHints:        codingOut.Hints,
			ConceptualQuestion: conceptualOut.Question,
			ConceptualHints:    conceptualOut.Hints,
			Generated:          ai.GeneratedBoth,
		}, nil
	}
}

func (s *ChallengeService) ownedSession(userID, sessionID string) (*ChallengeSession, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("challenge session not found: %w", common.ErrNotFound)
	}
	if sess.UserID != userID {
		return nil, common.ErrForbidden
	}
	return sess, nil
}

// applyIfCurrent runs fn under the session lock only when the session epoch
// still matches. A stale epoch means the session was restarted or torn down
// while a gateway call was in flight; the orphaned response is dropped.
func (sess *ChallengeSession) applyIfCurrent(epoch uint64, fn func()) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.epoch != epoch {
		return false
	}
	fn()
	return true
}

// resetResultLocked clears grading and solution state. Caller holds sess.mu.
func (sess *ChallengeSession) resetResultLocked() {
	sess.grading = nil
	sess.solution = nil
	sess.solutionErr = ""
	sess.persistErr = ""
}

func (sess *ChallengeSession) view() *SessionView {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.viewLocked()
}

func (sess *ChallengeSession) viewLocked() *SessionView {
	v := &SessionView{
		ID:                sess.ID,
		State:             sess.state,
		Params:            sess.Params,
		GradingResult:     sess.grading,
		GeneratedSolution: sess.solution,
		SolutionError:     sess.solutionErr,
		PersistError:      sess.persistErr,
	}
	if sess.question != nil {
		v.GeneratedType = sess.question.Generated
		v.ActiveDisplayType = sess.activeDisplayType
		v.Question = sess.question.QuestionFor(sess.activeDisplayType)
		v.Hints = sess.question.HintsFor(sess.activeDisplayType)
	}
	return v
}

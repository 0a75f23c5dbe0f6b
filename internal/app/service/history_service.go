package service

import (
	"context"
	"fmt"

	"github.com/ydaher97/code-crafter/internal/common"
	"github.com/ydaher97/code-crafter/internal/domain/model"
	"github.com/ydaher97/code-crafter/internal/domain/repository"
)

type HistoryService struct {
	historyRepo repository.HistoryRepository
}

func NewHistoryService(historyRepo repository.HistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// List returns the user's attempts, newest first, narrowed by the filter.
func (s *HistoryService) List(ctx context.Context, userID string, filter model.HistoryFilter) ([]model.ChallengeHistoryEntry, error) {
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		return nil, fmt.Errorf("invalid difficulty filter %q: %w", filter.Difficulty, common.ErrBadRequest)
	}
	if filter.QuestionType != "" && !filter.QuestionType.Valid() {
		return nil, fmt.Errorf("invalid question type filter %q: %w", filter.QuestionType, common.ErrBadRequest)
	}
	return s.historyRepo.Query(ctx, userID, filter)
}

// ProfileStats aggregates a user's attempt history for the profile page.
type ProfileStats struct {
	TotalAttempts  int                      `json:"total_attempts"`
	PassedAttempts int                      `json:"passed_attempts"`
	FailedAttempts int                      `json:"failed_attempts"`
	PassedByLevel  map[model.Difficulty]int `json:"passed_by_level"`
}

func (s *HistoryService) Stats(ctx context.Context, userID string) (*ProfileStats, error) {
	entries, err := s.historyRepo.Query(ctx, userID, model.HistoryFilter{})
	if err != nil {
		return nil, err
	}
	stats := &ProfileStats{PassedByLevel: make(map[model.Difficulty]int)}
	for _, e := range entries {
		stats.TotalAttempts++
		if e.GradingResult.Passed {
			stats.PassedAttempts++
			stats.PassedByLevel[e.Difficulty]++
		} else {
			stats.FailedAttempts++
		}
	}
	return stats, nil
}

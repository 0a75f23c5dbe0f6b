package service

import (
	"context"
	"log"

	"github.com/ydaher97/code-crafter/internal/common"
	"github.com/ydaher97/code-crafter/internal/domain/model"
	"github.com/ydaher97/code-crafter/internal/domain/repository"

	"github.com/google/uuid"
)

// AchievementService evaluates badge criteria after a passing attempt has
// been persisted and records newly earned badges. Each rule is independent
// and idempotent; duplicate awards are prevented by an existence check right
// before insert. The check-then-insert pair is not transactional, so two
// passing submissions landing at nearly the same instant can in theory
// double-award; that window is accepted.
type AchievementService struct {
	historyRepo     repository.HistoryRepository
	achievementRepo repository.AchievementRepository
	catalog         []model.Achievement
}

func NewAchievementService(historyRepo repository.HistoryRepository, achievementRepo repository.AchievementRepository) *AchievementService {
	return &AchievementService{
		historyRepo:     historyRepo,
		achievementRepo: achievementRepo,
		catalog:         model.AchievementsCatalog,
	}
}

// Evaluate runs every award rule for a just-persisted passing attempt and
// returns newly earned badges in award order. Failing attempts never unlock
// badges and must not be passed in.
func (s *AchievementService) Evaluate(ctx context.Context, userID string, entry *model.ChallengeHistoryEntry) ([]model.UserAchievement, error) {
	if !entry.GradingResult.Passed {
		return nil, nil
	}

	var awarded []model.UserAchievement

	// Rule 1: first passed challenge ever.
	totalPassed, err := s.historyRepo.CountPassed(ctx, userID)
	if err != nil {
		return awarded, err
	}
	if totalPassed == 1 {
		if ua, ok, err := s.award(ctx, userID, "initiate_programmer"); err != nil {
			return awarded, err
		} else if ok {
			awarded = append(awarded, ua)
		}
	}

	// Rule 2: exact passed count at the attempt's difficulty. The trigger is
	// exact-match: a badge earned at count 3 is not re-evaluated at count 4.
	for _, ach := range s.catalog {
		if ach.CriteriaDifficulty == nil || ach.CriteriaCount == 0 {
			continue
		}
		if *ach.CriteriaDifficulty != entry.Difficulty {
			continue
		}
		passedAtDifficulty, err := s.historyRepo.CountPassedByDifficulty(ctx, userID, entry.Difficulty)
		if err != nil {
			return awarded, err
		}
		if passedAtDifficulty != ach.CriteriaCount {
			continue
		}
		if ua, ok, err := s.award(ctx, userID, ach.ID); err != nil {
			return awarded, err
		} else if ok {
			awarded = append(awarded, ua)
		}
	}

	return awarded, nil
}

// award records one badge for the user unless it is already held. An
// already-held badge is normal control flow, not an error.
func (s *AchievementService) award(ctx context.Context, userID, achievementID string) (model.UserAchievement, bool, error) {
	ach, ok := model.AchievementByID(achievementID)
	if !ok {
		return model.UserAchievement{}, false, common.Errorf("unknown achievement %q: %w", achievementID, common.ErrInternalServer)
	}

	exists, err := s.achievementRepo.Exists(ctx, userID, achievementID)
	if err != nil {
		return model.UserAchievement{}, false, err
	}
	if exists {
		return model.UserAchievement{}, false, nil
	}

	ua := model.UserAchievement{
		ID:            uuid.NewString(),
		UserID:        userID,
		AchievementID: ach.ID,
		Name:          ach.Name,
		Description:   ach.Description,
		IconName:      ach.IconName,
	}
	if err := s.achievementRepo.Create(ctx, &ua); err != nil {
		return model.UserAchievement{}, false, err
	}
	log.Printf("User %s earned achievement %q", userID, ach.Name)
	return ua, true, nil
}

// Catalog returns the static badge catalog.
func (s *AchievementService) Catalog() []model.Achievement {
	return s.catalog
}

// EarnedByUser lists a user's badges, newest first.
func (s *AchievementService) EarnedByUser(ctx context.Context, userID string) ([]model.UserAchievement, error) {
	return s.achievementRepo.ListByUser(ctx, userID)
}

package repository

import (
	"context"
	"database/sql"

	"github.com/ydaher97/code-crafter/internal/domain/model"
)

// AchievementRepository stores earned badges. Uniqueness of
// (user, achievement) is enforced by the evaluator's read-then-insert; there
// is deliberately no database-level unique constraint on the pair.
type AchievementRepository interface {
	Exists(ctx context.Context, userID, achievementID string) (bool, error)
	Create(ctx context.Context, ua *model.UserAchievement) error
	ListByUser(ctx context.Context, userID string) ([]model.UserAchievement, error)
}

type pgAchievementRepository struct {
	db *sql.DB
}

func NewPgAchievementRepository(db *sql.DB) AchievementRepository {
	return &pgAchievementRepository{db: db}
}

func (r *pgAchievementRepository) Exists(ctx context.Context, userID, achievementID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM user_achievements WHERE user_id = $1 AND achievement_id = $2`
	if err := r.db.QueryRowContext(ctx, query, userID, achievementID).Scan(&count); err != nil {
		return false, classifyStoreError("pgAchievementRepository.Exists", err)
	}
	return count > 0, nil
}

func (r *pgAchievementRepository) Create(ctx context.Context, ua *model.UserAchievement) error {
	query := `INSERT INTO user_achievements (id, user_id, achievement_id, name, description, icon_name)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING earned_at`
	err := r.db.QueryRowContext(ctx, query,
		ua.ID, ua.UserID, ua.AchievementID, ua.Name, ua.Description, ua.IconName,
	).Scan(&ua.EarnedAt)
	if err != nil {
		return classifyStoreError("pgAchievementRepository.Create", err)
	}
	return nil
}

func (r *pgAchievementRepository) ListByUser(ctx context.Context, userID string) ([]model.UserAchievement, error) {
	query := `SELECT id, user_id, achievement_id, name, description, icon_name, earned_at
	          FROM user_achievements WHERE user_id = $1 ORDER BY earned_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, classifyStoreError("pgAchievementRepository.ListByUser", err)
	}
	defer rows.Close()

	var earned []model.UserAchievement
	for rows.Next() {
		var ua model.UserAchievement
		if err := rows.Scan(&ua.ID, &ua.UserID, &ua.AchievementID, &ua.Name, &ua.Description, &ua.IconName, &ua.EarnedAt); err != nil {
			return nil, classifyStoreError("pgAchievementRepository.ListByUser scan", err)
		}
		earned = append(earned, ua)
	}
	return earned, rows.Err()
}

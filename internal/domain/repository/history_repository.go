package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/ydaher97/code-crafter/internal/common"
	"github.com/ydaher97/code-crafter/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// HistoryRepository is the append-only store of challenge attempts. Append
// assigns created_at server-side; entries are never updated or deleted.
type HistoryRepository interface {
	Append(ctx context.Context, entry *model.ChallengeHistoryEntry) (string, error)
	Query(ctx context.Context, userID string, filter model.HistoryFilter) ([]model.ChallengeHistoryEntry, error)
	CountPassed(ctx context.Context, userID string) (int, error)
	CountPassedByDifficulty(ctx context.Context, userID string, difficulty model.Difficulty) (int, error)
}

type pgHistoryRepository struct {
	db *sql.DB
}

func NewPgHistoryRepository(db *sql.DB) HistoryRepository {
	return &pgHistoryRepository{db: db}
}

func (r *pgHistoryRepository) Append(ctx context.Context, entry *model.ChallengeHistoryEntry) (string, error) {
	query := `INSERT INTO challenge_history
	          (id, user_id, topic, difficulty, question_type, question, user_solution,
	           score, feedback, passed, solution, solution_explanation)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING created_at`
	var solution, explanation sql.NullString
	if entry.GeneratedSolution != nil {
		solution = sql.NullString{String: entry.GeneratedSolution.Solution, Valid: true}
		explanation = sql.NullString{String: entry.GeneratedSolution.Explanation, Valid: true}
	}
	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.UserID, entry.Topic, entry.Difficulty, entry.QuestionType,
		entry.Question, entry.UserSolution,
		entry.GradingResult.Score, entry.GradingResult.Feedback, entry.GradingResult.Passed,
		solution, explanation,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return "", classifyStoreError("pgHistoryRepository.Append", err)
	}
	return entry.ID, nil
}

func (r *pgHistoryRepository) Query(ctx context.Context, userID string, filter model.HistoryFilter) ([]model.ChallengeHistoryEntry, error) {
	query := `SELECT id, user_id, topic, difficulty, question_type, question, user_solution,
	                 score, feedback, passed, solution, solution_explanation, created_at
	          FROM challenge_history WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Topic != "" {
		args = append(args, filter.Topic)
		query += " AND topic = $" + strconv.Itoa(len(args))
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		query += " AND difficulty = $" + strconv.Itoa(len(args))
	}
	if filter.Passed != nil {
		args = append(args, *filter.Passed)
		query += " AND passed = $" + strconv.Itoa(len(args))
	}
	if filter.QuestionType != "" {
		args = append(args, filter.QuestionType)
		query += " AND question_type = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyStoreError("pgHistoryRepository.Query", err)
	}
	defer rows.Close()

	var entries []model.ChallengeHistoryEntry
	for rows.Next() {
		var e model.ChallengeHistoryEntry
		var solution, explanation sql.NullString
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Topic, &e.Difficulty, &e.QuestionType, &e.Question, &e.UserSolution,
			&e.GradingResult.Score, &e.GradingResult.Feedback, &e.GradingResult.Passed,
			&solution, &explanation, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgHistoryRepository.Query scan: %w", err)
		}
		if solution.Valid {
			e.GeneratedSolution = &model.GeneratedSolution{
				Solution:    solution.String,
				Explanation: explanation.String,
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *pgHistoryRepository) CountPassed(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM challenge_history WHERE user_id = $1 AND passed = TRUE`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, classifyStoreError("pgHistoryRepository.CountPassed", err)
	}
	return count, nil
}

func (r *pgHistoryRepository) CountPassedByDifficulty(ctx context.Context, userID string, difficulty model.Difficulty) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM challenge_history
	          WHERE user_id = $1 AND difficulty = $2 AND passed = TRUE`
	if err := r.db.QueryRowContext(ctx, query, userID, difficulty).Scan(&count); err != nil {
		return 0, classifyStoreError("pgHistoryRepository.CountPassedByDifficulty", err)
	}
	return count, nil
}

// classifyStoreError maps driver failures to the store error taxonomy.
func classifyStoreError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42501": // insufficient_privilege
			return fmt.Errorf("%s: %v: %w", op, err, common.ErrPermissionDenied)
		case "57P03", "53300": // cannot_connect_now, too_many_connections
			return fmt.Errorf("%s: %v: %w", op, err, common.ErrStoreUnavailable)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %v: %w", op, err, common.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

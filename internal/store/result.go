package store

import (
	"context"
	"database/sql"
	"fmt"
)

type resultRepo struct {
	db *sql.DB
}

func (r *resultRepo) Append(ctx context.Context, res StudyResult) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO study_result
			(session_id, deck_title, mode, cards_total, score, best_streak, mastered, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.SessionID, res.DeckTitle, res.Mode, res.CardsTotal,
		res.Score, res.BestStreak, res.Mastered, res.DurationMs)
	if err != nil {
		return fmt.Errorf("insert study result: %w", err)
	}
	return nil
}

func (r *resultRepo) List(ctx context.Context, limit int) ([]StudyResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, deck_title, mode, cards_total, score, best_streak, mastered, duration_ms, created_at
		FROM study_result
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query study results: %w", err)
	}
	defer rows.Close()

	var out []StudyResult
	for rows.Next() {
		var res StudyResult
		if err := rows.Scan(&res.ID, &res.SessionID, &res.DeckTitle, &res.Mode,
			&res.CardsTotal, &res.Score, &res.BestStreak, &res.Mastered,
			&res.DurationMs, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan study result: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *resultRepo) BestScore(ctx context.Context, deckTitle string) (int, error) {
	// MAX over zero rows yields NULL, so scan into a nullable int.
	var best sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(score) FROM study_result
		WHERE deck_title = ? AND mode = 'speed_run'`, deckTitle).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("query best score: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
)

type quizResultRepo struct {
	db *sql.DB
}

func (r *quizResultRepo) Record(ctx context.Context, rec QuizResultRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO quiz_results (id, topic, score, total) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Topic, rec.Score, rec.Total,
	)
	if err != nil {
		return fmt.Errorf("record quiz result: %w", err)
	}
	return nil
}

func (r *quizResultRepo) List(ctx context.Context, opts QueryOpts) ([]QuizResultRecord, error) {
	q := `SELECT id, topic, score, total, finished_at FROM quiz_results ORDER BY finished_at DESC`
	args := []any{}
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	var out []QuizResultRecord
	for rows.Next() {
		var rec QuizResultRecord
		if err := rows.Scan(&rec.ID, &rec.Topic, &rec.Score, &rec.Total, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *quizResultRepo) StatsByTopic(ctx context.Context) ([]TopicStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT topic, COUNT(*), MAX(score), AVG(score), MAX(total)
		 FROM quiz_results GROUP BY topic ORDER BY COUNT(*) DESC, topic`,
	)
	if err != nil {
		return nil, fmt.Errorf("quiz stats: %w", err)
	}
	defer rows.Close()

	var out []TopicStats
	for rows.Next() {
		var s TopicStats
		if err := rows.Scan(&s.Topic, &s.Attempts, &s.BestScore, &s.AvgScore, &s.Total); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

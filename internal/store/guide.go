package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type guideRepo struct {
	db *sql.DB
}

// topicKey normalizes a topic for the case-insensitive uniqueness constraint.
func topicKey(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

func (r *guideRepo) Insert(ctx context.Context, topic, content, sources string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO guides (topic, topic_key, content, sources) VALUES (?, ?, ?, ?)`,
		strings.TrimSpace(topic), topicKey(topic), content, sources,
	)
	if err != nil {
		return false, fmt.Errorf("insert guide: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *guideRepo) List(ctx context.Context, opts QueryOpts) ([]GuideRecord, error) {
	q := `SELECT id, topic, content, sources, created_at FROM guides ORDER BY id DESC`
	args := []any{}
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	defer rows.Close()

	var out []GuideRecord
	for rows.Next() {
		var g GuideRecord
		if err := rows.Scan(&g.ID, &g.Topic, &g.Content, &g.Sources, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan guide: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *guideRepo) GetByTopic(ctx context.Context, topic string) (*GuideRecord, error) {
	var g GuideRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT id, topic, content, sources, created_at FROM guides WHERE topic_key = ?`,
		topicKey(topic),
	).Scan(&g.ID, &g.Topic, &g.Content, &g.Sources, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get guide: %w", err)
	}
	return &g, nil
}

func (r *guideRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM guides`); err != nil {
		return fmt.Errorf("delete guides: %w", err)
	}
	return nil
}

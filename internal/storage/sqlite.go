package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"homework_bot/internal/model"
	"homework_bot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

var _ Storage = (*SQLite)(nil)

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// RecordNotification inserts a journal entry and populates its ID and CreatedAt.
func (s *SQLite) RecordNotification(ctx context.Context, n *model.Notification) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (kind, homework_name, status, text, delivered, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(n.Kind), n.HomeworkName, string(n.Status), n.Text, boolToInt(n.Delivered), n.Error, now,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	n.ID = id
	n.CreatedAt, _ = time.Parse(timeLayout, now)
	return nil
}

// ListNotifications returns up to limit entries, newest first.
func (s *SQLite) ListNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, homework_name, status, text, delivered, error, created_at
		 FROM notifications ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type scannable interface {
	Scan(dest ...any) error
}

func scanNotification(row scannable) (model.Notification, error) {
	var n model.Notification
	var kind, status, created string
	var delivered int
	err := row.Scan(&n.ID, &kind, &n.HomeworkName, &status, &n.Text, &delivered, &n.Error, &created)
	if err != nil {
		return n, fmt.Errorf("scan notification: %w", err)
	}
	n.Kind = model.NotificationKind(kind)
	n.Status = model.Status(status)
	n.Delivered = delivered == 1
	n.CreatedAt, _ = time.Parse(timeLayout, created)
	return n, nil
}

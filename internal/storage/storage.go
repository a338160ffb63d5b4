// Package storage defines the notification journal and its SQLite implementation.
//
// The journal is an append-only audit trail of delivery attempts. Poll state
// is never read back from it.
package storage

import (
	"context"

	"homework_bot/internal/model"
)

// Storage is the interface for journal persistence.
type Storage interface {
	RecordNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, limit int) ([]model.Notification, error)
	Close() error
}

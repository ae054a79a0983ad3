package notification

import (
	"context"

	"facilityhub/internal/domain"
)

// Store is the persistence surface the dispatcher and the REST handler use.
type Store interface {
	Create(ctx context.Context, n *domain.Notification) error
	CreateMany(ctx context.Context, ns []domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID int64, limit, skip int, unreadOnly bool) ([]domain.Notification, int64, int64, error)
	MarkRead(ctx context.Context, id, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	Delete(ctx context.Context, id, recipientID int64) error
	DeleteAllForRecipient(ctx context.Context, recipientID int64) error
}

// UserDirectory resolves recipients and their roles.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
	IDsByRole(ctx context.Context, roles ...domain.Role) ([]int64, error)
}

// Pusher is the live transport the dispatcher pushes through.
type Pusher interface {
	EmitToUser(userID int64, event string, data any) error
}

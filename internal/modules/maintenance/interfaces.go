package maintenance

import (
	"context"

	"facilityhub/internal/domain"
	"facilityhub/internal/repository"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.MaintenanceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error)
	ListBySubmitter(ctx context.Context, userID int64) ([]domain.MaintenanceRequest, error)
	ListAll(ctx context.Context) ([]domain.MaintenanceRequest, error)
	Save(ctx context.Context, req *domain.MaintenanceRequest) error
	Stats(ctx context.Context) (*repository.RequestStats, error)
}

type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier is the dispatcher surface of the lifecycle controller. All calls
// are best-effort fire-and-forget.
type Notifier interface {
	RequestCreated(req *domain.MaintenanceRequest, submitterName string)
	RequestAssigned(req *domain.MaintenanceRequest, technician *domain.User)
	RequestStatusChanged(req *domain.MaintenanceRequest)
	RequestCompleted(req *domain.MaintenanceRequest)
}

// Broadcaster pushes the unscoped request_updated event used by list views.
type Broadcaster interface {
	Broadcast(event string, data any) error
}

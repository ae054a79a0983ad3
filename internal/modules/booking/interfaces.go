package booking

import (
	"context"
	"time"

	"facilityhub/internal/domain"
	"facilityhub/internal/repository"
)

// BookingRepository is the persistence surface of the conflict resolver.
type BookingRepository interface {
	HasOverlap(ctx context.Context, facilityID int64, start, end time.Time) (bool, error)
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListForFacility(ctx context.Context, facilityID int64, day *repository.Window) ([]domain.Booking, error)
	ListByDay(ctx context.Context, day repository.Window) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// Notifier is the dispatcher surface the resolver triggers. Both calls are
// best-effort fire-and-forget.
type Notifier interface {
	BookingCreated(b *domain.Booking, facilityName string)
	BookingCancelled(b *domain.Booking, facilityName string)
}

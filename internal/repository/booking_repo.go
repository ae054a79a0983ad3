package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"facilityhub/internal/domain"
)

// Window is a half-open [Start, End) time range.
type Window struct {
	Start time.Time
	End   time.Time
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// overlapping scopes the query to Booked rows intersecting [start, end) for
// one facility. Overlap test: existing.start < end AND existing.end > start.
func overlapping(q *gorm.DB, facilityID int64, start, end time.Time) *gorm.DB {
	return q.
		Where("facility_id = ?", facilityID).
		Where("status = ?", domain.BookingBooked).
		Where("start_time < ? AND end_time > ?", end, start)
}

// HasOverlap reports whether any Booked booking for the facility intersects
// the given window.
func (r *BookingRepository) HasOverlap(ctx context.Context, facilityID int64, start, end time.Time) (bool, error) {
	var count int64
	err := overlapping(r.db.WithContext(ctx).Model(&domain.Booking{}), facilityID, start, end).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the booking after re-checking the overlap invariant inside
// the same transaction. The service additionally serializes callers per
// facility; the re-check here keeps the invariant safe against writers that
// bypass that lock.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := overlapping(tx.Model(&domain.Booking{}), b.FacilityID, b.Start, b.End).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrOverlap
		}

		if err := tx.Create(b).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrOverlap
			}
			return err
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListForFacility returns Booked bookings for one facility ordered by start,
// optionally restricted to bookings overlapping the given day window.
func (r *BookingRepository) ListForFacility(ctx context.Context, facilityID int64, day *Window) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Preload("User").
		Where("facility_id = ?", facilityID).
		Where("status = ?", domain.BookingBooked)

	if day != nil {
		q = q.Where("start_time < ? AND end_time > ?", day.End, day.Start)
	}

	var out []domain.Booking
	err := q.Order("start_time ASC").Find(&out).Error
	return out, err
}

// ListByDay returns Booked bookings across all facilities overlapping the
// day window, ordered by start.
func (r *BookingRepository) ListByDay(ctx context.Context, day Window) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Facility").
		Preload("User").
		Where("status = ?", domain.BookingBooked).
		Where("start_time < ? AND end_time > ?", day.End, day.Start).
		Order("start_time ASC").
		Find(&out).Error
	return out, err
}

// ListByUser returns the user's bookings (all statuses), newest first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Facility").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&out).Error
	return out, err
}

// ListAll returns every booking, newest first. Admin/manager view.
func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Facility").
		Preload("User").
		Order("start_time DESC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

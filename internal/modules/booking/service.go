package booking

import (
	"context"
	"errors"
	"time"

	"facilityhub/internal/domain"
	"facilityhub/internal/repository"
)

type Service struct {
	bookings   BookingRepository
	facilities FacilityRepository
	notifs     Notifier
	locks      *facilityLocks
}

func NewService(bookings BookingRepository, facilities FacilityRepository, notifs Notifier) *Service {
	return &Service{
		bookings:   bookings,
		facilities: facilities,
		notifs:     notifs,
		locks:      newFacilityLocks(),
	}
}

// CreateBooking validates and atomically commits a booking for the half-open
// window [start, end). The availability check and the insert run under the
// facility's lock, so two concurrent requests for overlapping windows cannot
// both pass the check; exactly one succeeds, the other gets ErrConflict.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if req.Start.IsZero() || req.End.IsZero() || !req.End.After(req.Start) {
		return nil, ErrValidation
	}

	facility, err := s.facilities.GetByID(ctx, req.FacilityID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, err
	}
	if !facility.IsActive {
		return nil, ErrFacilityNotFound
	}

	lock := s.locks.Lock(req.FacilityID)
	defer lock.Unlock()

	taken, err := s.bookings.HasOverlap(ctx, req.FacilityID, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	b := &domain.Booking{
		FacilityID: req.FacilityID,
		UserID:     userID,
		Start:      req.Start,
		End:        req.End,
		Date:       req.Start.UTC().Format("2006-01-02"),
		Purpose:    req.Purpose,
		Status:     domain.BookingBooked,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.notifs.BookingCreated(b, facility.Name)
	return b, nil
}

// GetFacilityBookings returns the facility's Booked bookings ordered by
// start, optionally only those overlapping the given calendar day. A booking
// crossing midnight shows up on both days.
func (s *Service) GetFacilityBookings(ctx context.Context, facilityID int64, date string) ([]domain.Booking, error) {
	if _, err := s.facilities.GetByID(ctx, facilityID); errors.Is(err, repository.ErrNotFound) {
		return nil, ErrFacilityNotFound
	} else if err != nil {
		return nil, err
	}

	var day *repository.Window
	if date != "" {
		w, err := dayWindow(date)
		if err != nil {
			return nil, ErrValidation
		}
		day = &w
	}
	return s.bookings.ListForFacility(ctx, facilityID, day)
}

// GetBookingsByDate is the cross-facility day view for dashboards.
func (s *Service) GetBookingsByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	w, err := dayWindow(date)
	if err != nil {
		return nil, ErrValidation
	}
	return s.bookings.ListByDay(ctx, w)
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *Service) GetAllBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// CancelBooking soft-cancels: the row stays for history but leaves the
// overlap predicate immediately, freeing the slot. Only the owner or an
// admin may cancel.
func (s *Service) CancelBooking(ctx context.Context, bookingID, actorID int64, actorRole domain.Role) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	if b.UserID != actorID && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if b.Status == domain.BookingCancelled {
		return nil, ErrAlreadyCancelled
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingCancelled); err != nil {
		return nil, err
	}
	b.Status = domain.BookingCancelled

	facilityName := ""
	if f, err := s.facilities.GetByID(ctx, b.FacilityID); err == nil {
		facilityName = f.Name
	}
	s.notifs.BookingCancelled(b, facilityName)

	return b, nil
}

// dayWindow converts a YYYY-MM-DD date into the half-open UTC window
// [00:00, +24h) used by the day-overlap predicate.
func dayWindow(date string) (repository.Window, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return repository.Window{}, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return repository.Window{Start: start, End: start.Add(24 * time.Hour)}, nil
}

package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"facilityhub/internal/domain"
	"facilityhub/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) HasOverlap(ctx context.Context, facilityID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, facilityID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForFacility(ctx context.Context, facilityID int64, day *repository.Window) ([]domain.Booking, error) {
	args := m.Called(ctx, facilityID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByDay(ctx context.Context, day repository.Window) ([]domain.Booking, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockFacilityRepository struct {
	mock.Mock
}

func (m *MockFacilityRepository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facility), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingCreated(b *domain.Booking, facilityName string) {
	m.Called(b, facilityName)
}

func (m *MockNotifier) BookingCancelled(b *domain.Booking, facilityName string) {
	m.Called(b, facilityName)
}

func activeFacility(id int64) *domain.Facility {
	return &domain.Facility{ID: id, Name: "Conference Room A", IsActive: true}
}

func TestCreateBooking_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	facilities := new(MockFacilityRepository)
	notifs := new(MockNotifier)

	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	facilities.On("GetByID", mock.Anything, int64(7)).Return(activeFacility(7), nil)
	bookings.On("HasOverlap", mock.Anything, int64(7), start, end).Return(false, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifs.On("BookingCreated", mock.Anything, "Conference Room A").Return()

	service := NewService(bookings, facilities, notifs)

	b, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		FacilityID: 7,
		Start:      start,
		End:        end,
		Purpose:    "team sync",
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, domain.BookingBooked, b.Status)
	assert.Equal(t, int64(42), b.UserID)
	assert.Equal(t, "2026-03-10", b.Date)
	notifs.AssertExpectations(t)
}

func TestCreateBooking_EndBeforeStart(t *testing.T) {
	service := NewService(new(MockBookingRepository), new(MockFacilityRepository), new(MockNotifier))

	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		FacilityID: 7,
		Start:      start,
		End:        start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)

	// Zero-length windows are invalid too.
	_, err = service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		FacilityID: 7,
		Start:      start,
		End:        start,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_FacilityNotFound(t *testing.T) {
	facilities := new(MockFacilityRepository)
	facilities.On("GetByID", mock.Anything, int64(7)).Return(nil, repository.ErrNotFound)

	service := NewService(new(MockBookingRepository), facilities, new(MockNotifier))

	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		FacilityID: 7,
		Start:      start,
		End:        start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestCreateBooking_InactiveFacility(t *testing.T) {
	facilities := new(MockFacilityRepository)
	facilities.On("GetByID", mock.Anything, int64(7)).Return(&domain.Facility{ID: 7, IsActive: false}, nil)

	service := NewService(new(MockBookingRepository), facilities, new(MockNotifier))

	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		FacilityID: 7,
		Start:      start,
		End:        start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestCreateBooking_Conflict(t *testing.T) {
	bookings := new(MockBookingRepository)
	facilities := new(MockFacilityRepository)
	notifs := new(MockNotifier)

	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	facilities.On("GetByID", mock.Anything, int64(7)).Return(activeFacility(7), nil)
	bookings.On("HasOverlap", mock.Anything, int64(7), start, end).Return(true, nil)

	service := NewService(bookings, facilities, notifs)

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		FacilityID: 7,
		Start:      start,
		End:        end,
	})

	assert.ErrorIs(t, err, ErrConflict)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	notifs.AssertNotCalled(t, "BookingCreated", mock.Anything, mock.Anything)
}

func TestCreateBooking_RepoOverlapMapsToConflict(t *testing.T) {
	// A writer that bypasses the facility lock is caught by the
	// transactional re-check in the repository.
	bookings := new(MockBookingRepository)
	facilities := new(MockFacilityRepository)

	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	facilities.On("GetByID", mock.Anything, int64(7)).Return(activeFacility(7), nil)
	bookings.On("HasOverlap", mock.Anything, int64(7), start, end).Return(false, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(repository.ErrOverlap)

	service := NewService(bookings, facilities, new(MockNotifier))

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		FacilityID: 7,
		Start:      start,
		End:        end,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCancelBooking_OwnerAndAdmin(t *testing.T) {
	bookings := new(MockBookingRepository)
	facilities := new(MockFacilityRepository)
	notifs := new(MockNotifier)

	owned := &domain.Booking{ID: 5, FacilityID: 7, UserID: 42, Status: domain.BookingBooked}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(owned, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingCancelled).Return(nil)
	facilities.On("GetByID", mock.Anything, int64(7)).Return(activeFacility(7), nil)
	notifs.On("BookingCancelled", mock.Anything, "Conference Room A").Return()

	service := NewService(bookings, facilities, notifs)

	b, err := service.CancelBooking(context.Background(), 5, 42, domain.RoleEmployee)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestCancelBooking_Forbidden(t *testing.T) {
	bookings := new(MockBookingRepository)
	owned := &domain.Booking{ID: 5, FacilityID: 7, UserID: 42, Status: domain.BookingBooked}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(owned, nil)

	service := NewService(bookings, new(MockFacilityRepository), new(MockNotifier))

	// Another employee may not cancel, a manager may not either - admin only.
	_, err := service.CancelBooking(context.Background(), 5, 99, domain.RoleEmployee)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.CancelBooking(context.Background(), 5, 99, domain.RoleManager)
	assert.ErrorIs(t, err, ErrForbidden)

	bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBookingsByDate_BadDate(t *testing.T) {
	service := NewService(new(MockBookingRepository), new(MockFacilityRepository), new(MockNotifier))

	_, err := service.GetBookingsByDate(context.Background(), "10-03-2026")
	assert.ErrorIs(t, err, ErrValidation)
}

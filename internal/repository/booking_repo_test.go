package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"facilityhub/internal/database"
	"facilityhub/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"), log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedBookingFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&domain.User{
		Username: "erin", Email: "erin@example.com", Role: domain.RoleEmployee, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&domain.Facility{
		Name: "Conference Room A", Location: "Floor 1", Capacity: 12, IsActive: true,
	}).Error)
}

func booked(facilityID, userID int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		FacilityID: facilityID,
		UserID:     userID,
		Start:      start,
		End:        end,
		Date:       start.UTC().Format("2006-01-02"),
		Status:     domain.BookingBooked,
	}
}

func TestBookingRepo_CreateAndOverlap(t *testing.T) {
	db := testDB(t)
	seedBookingFixtures(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	require.NoError(t, repo.Create(ctx, booked(1, 1, start, end)))

	taken, err := repo.HasOverlap(ctx, 1, start.Add(time.Hour), end.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, taken)

	// Adjacent window is free.
	taken, err = repo.HasOverlap(ctx, 1, end, end.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, taken)

	// Other facilities are unaffected.
	taken, err = repo.HasOverlap(ctx, 2, start, end)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestBookingRepo_CreateRechecksInsideTransaction(t *testing.T) {
	db := testDB(t)
	seedBookingFixtures(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	require.NoError(t, repo.Create(ctx, booked(1, 1, start, end)))

	err := repo.Create(ctx, booked(1, 1, start.Add(30*time.Minute), end.Add(30*time.Minute)))
	assert.ErrorIs(t, err, ErrOverlap)

	var count int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBookingRepo_CancelledRowsLeaveThePredicate(t *testing.T) {
	db := testDB(t)
	seedBookingFixtures(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	b := booked(1, 1, start, end)
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.UpdateStatus(ctx, b.ID, domain.BookingCancelled))

	taken, err := repo.HasOverlap(ctx, 1, start, end)
	require.NoError(t, err)
	assert.False(t, taken)

	// The row itself survives for history.
	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
}

func TestBookingRepo_ListForFacilityDayWindow(t *testing.T) {
	db := testDB(t)
	seedBookingFixtures(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	// Crosses midnight 2026-03-10 -> 2026-03-11.
	start := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, booked(1, 1, start, start.Add(time.Hour))))

	day := func(y int, m time.Month, d int) *Window {
		s := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &Window{Start: s, End: s.Add(24 * time.Hour)}
	}

	list, err := repo.ListForFacility(ctx, 1, day(2026, 3, 10))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = repo.ListForFacility(ctx, 1, day(2026, 3, 11))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = repo.ListForFacility(ctx, 1, day(2026, 3, 12))
	require.NoError(t, err)
	assert.Len(t, list, 0)

	// No window: everything Booked for the facility.
	list, err = repo.ListForFacility(ctx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBookingRepo_NotFound(t *testing.T) {
	db := testDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.UpdateStatus(ctx, 999, domain.BookingCancelled)
	assert.ErrorIs(t, err, ErrNotFound)
}

package domain

import "time"

type BookingStatus string

const (
	BookingBooked    BookingStatus = "Booked"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

// Booking reserves a facility for the half-open interval [Start, End).
// Bookings are never rescheduled; the supported path is cancel-and-recreate,
// so only Status is ever mutated after creation.
//
// Invariant: for one facility the set of rows with Status == Booked is
// pairwise non-overlapping. Two intervals overlap when
// a.Start < b.End && a.End > b.Start.
type Booking struct {
	ID         int64         `gorm:"column:id;primaryKey" json:"id"`
	FacilityID int64         `gorm:"column:facility_id;index:idx_bookings_facility_start" json:"facility_id"`
	UserID     int64         `gorm:"column:user_id;index" json:"user_id"`
	Start      time.Time     `gorm:"column:start_time;index:idx_bookings_facility_start" json:"start"`
	End        time.Time     `gorm:"column:end_time" json:"end"`
	// Date is the UTC calendar day of Start (YYYY-MM-DD), denormalized for
	// day-range dashboard queries.
	Date      string        `gorm:"column:date;size:10;index" json:"date"`
	Purpose   string        `gorm:"column:purpose;size:500" json:"purpose,omitempty"`
	Status    BookingStatus `gorm:"column:status;size:20;default:Booked" json:"status"`
	CreatedAt time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at" json:"updated_at"`

	Facility *Facility `gorm:"foreignKey:FacilityID" json:"facility,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Booking) TableName() string { return "bookings" }

// Overlaps applies the half-open interval intersection test against another
// time window.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}

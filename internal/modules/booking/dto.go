package booking

import "time"

type CreateBookingRequest struct {
	FacilityID int64     `json:"facilityId" binding:"required"`
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
	Purpose    string    `json:"purpose" binding:"max=500"`
}

package notification

import (
	"fmt"

	"facilityhub/internal/domain"
)

// Frontend pages the templates deep-link to. The technician task view
// replaces the general "my requests" page for technician recipients.
const (
	urlAdminMaintenance = "/admin/maintenance"
	urlTechnicianTasks  = "/technician/maintenance"
	urlMyRequests       = "/maintenance-requests"
	urlManagerBookings  = "/manager/bookings"
	urlAdminFacilities  = "/admin/facilities"
)

// Payload is a notification before recipient resolution: no recipient id and
// a role-agnostic default ActionURL.
type Payload struct {
	Type      domain.NotificationType
	Title     string
	Message   string
	ActionURL string

	RequestID  *int64
	BookingID  *int64
	FacilityID *int64
	UserID     *int64
}

// rewriteForRole substitutes role-appropriate pages for templates whose
// default target is not reachable by the recipient's role. Computed per
// recipient: one NotifyMultiple batch may span several roles.
func rewriteForRole(role domain.Role, url string) string {
	if role == domain.RoleTechnician && url == urlMyRequests {
		return urlTechnicianTasks
	}
	return url
}

func (p Payload) toNotification(recipientID int64, actionURL string) domain.Notification {
	return domain.Notification{
		RecipientID:       recipientID,
		Type:              p.Type,
		Title:             p.Title,
		Message:           p.Message,
		ActionURL:         actionURL,
		RelatedRequestID:  p.RequestID,
		RelatedBookingID:  p.BookingID,
		RelatedFacilityID: p.FacilityID,
		RelatedUserID:     p.UserID,
	}
}

// Template catalog: pure functions of event data.

func RequestCreatedPayload(requestID int64, title, submitterName string) Payload {
	return Payload{
		Type:      domain.NotifRequestCreated,
		Title:     "New Maintenance Request",
		Message:   fmt.Sprintf("New request created: %s by %s", title, submitterName),
		ActionURL: urlAdminMaintenance,
		RequestID: &requestID,
	}
}

// RequestAssignedToTechnicianPayload targets the assigned technician.
func RequestAssignedToTechnicianPayload(requestID int64, title string) Payload {
	return Payload{
		Type:      domain.NotifRequestAssigned,
		Title:     "Request Assigned to You",
		Message:   fmt.Sprintf("You have been assigned to: %s", title),
		ActionURL: urlTechnicianTasks,
		RequestID: &requestID,
	}
}

// TechnicianAssignedPayload targets the request submitter.
func TechnicianAssignedPayload(requestID int64, title, technicianName string) Payload {
	return Payload{
		Type:      domain.NotifRequestAssigned,
		Title:     "Technician Assigned",
		Message:   fmt.Sprintf("%s has been assigned to your request: %s", technicianName, title),
		ActionURL: urlMyRequests,
		RequestID: &requestID,
	}
}

func RequestStatusChangedPayload(requestID int64, title string, newStatus domain.RequestStatus) Payload {
	return Payload{
		Type:      domain.NotifRequestStatusChanged,
		Title:     "Request Status Updated",
		Message:   fmt.Sprintf("Your request %q is now %s", title, newStatus),
		ActionURL: urlMyRequests,
		RequestID: &requestID,
	}
}

func RequestCompletedPayload(requestID int64, title string) Payload {
	return Payload{
		Type:      domain.NotifRequestCompleted,
		Title:     "Request Completed",
		Message:   fmt.Sprintf("Request %q has been marked as completed", title),
		ActionURL: urlMyRequests,
		RequestID: &requestID,
	}
}

func BookingCreatedPayload(bookingID int64, facilityName, date string) Payload {
	return Payload{
		Type:      domain.NotifBookingCreated,
		Title:     "New Facility Booking",
		Message:   fmt.Sprintf("New booking for %s on %s", facilityName, date),
		ActionURL: urlManagerBookings,
		BookingID: &bookingID,
	}
}

func BookingCancelledPayload(bookingID int64, facilityName, date string) Payload {
	return Payload{
		Type:      domain.NotifBookingCancelled,
		Title:     "Facility Booking Cancelled",
		Message:   fmt.Sprintf("Booking for %s on %s was cancelled", facilityName, date),
		ActionURL: urlManagerBookings,
		BookingID: &bookingID,
	}
}

func BookingApprovedPayload(bookingID int64, facilityName string) Payload {
	return Payload{
		Type:      domain.NotifBookingApproved,
		Title:     "Booking Approved",
		Message:   fmt.Sprintf("Your booking for %s has been approved", facilityName),
		ActionURL: urlManagerBookings,
		BookingID: &bookingID,
	}
}

func FacilityMaintenancePayload(facilityID int64, facilityName string) Payload {
	return Payload{
		Type:       domain.NotifFacilityMaintenance,
		Title:      "Facility Maintenance Scheduled",
		Message:    fmt.Sprintf("Maintenance scheduled for %s", facilityName),
		ActionURL:  urlAdminFacilities,
		FacilityID: &facilityID,
	}
}

func FacilityAvailablePayload(facilityID int64, facilityName string) Payload {
	return Payload{
		Type:       domain.NotifFacilityAvailable,
		Title:      "Facility Available",
		Message:    fmt.Sprintf("%s is available for booking again", facilityName),
		ActionURL:  urlAdminFacilities,
		FacilityID: &facilityID,
	}
}

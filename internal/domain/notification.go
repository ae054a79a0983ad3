package domain

import "time"

type NotificationType string

const (
	NotifRequestCreated       NotificationType = "request_created"
	NotifRequestAssigned      NotificationType = "request_assigned"
	NotifRequestStatusChanged NotificationType = "request_status_changed"
	NotifRequestCompleted     NotificationType = "request_completed"
	NotifRequestUpdated       NotificationType = "request_updated"
	NotifBookingCreated       NotificationType = "booking_created"
	NotifBookingApproved      NotificationType = "booking_approved"
	NotifBookingCancelled     NotificationType = "booking_cancelled"
	NotifFacilityMaintenance  NotificationType = "facility_maintenance_scheduled"
	NotifFacilityAvailable    NotificationType = "facility_available"
)

// Notification is the durable record of a dispatched event. Rows are
// immutable except for IsRead, and only the recipient may read or delete
// them.
type Notification struct {
	ID          int64            `gorm:"column:id;primaryKey" json:"id"`
	RecipientID int64            `gorm:"column:recipient_id;index:idx_notifications_recipient_created;index:idx_notifications_recipient_unread" json:"recipient_id"`
	Type        NotificationType `gorm:"column:type;size:40" json:"type"`
	Title       string           `gorm:"column:title;size:100" json:"title"`
	Message     string           `gorm:"column:message;size:500" json:"message"`
	IsRead      bool             `gorm:"column:is_read;default:false;index:idx_notifications_recipient_unread" json:"is_read"`
	ActionURL   string           `gorm:"column:action_url;size:200" json:"action_url,omitempty"`

	RelatedRequestID  *int64 `gorm:"column:related_request" json:"related_request,omitempty"`
	RelatedBookingID  *int64 `gorm:"column:related_booking" json:"related_booking,omitempty"`
	RelatedFacilityID *int64 `gorm:"column:related_facility" json:"related_facility,omitempty"`
	RelatedUserID     *int64 `gorm:"column:related_user" json:"related_user,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;index:idx_notifications_recipient_created" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

package domain

import "time"

type RequestStatus string

const (
	RequestPending    RequestStatus = "Pending"
	RequestInProgress RequestStatus = "In Progress"
	RequestCompleted  RequestStatus = "Completed"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestInProgress, RequestCompleted:
		return true
	}
	return false
}

// CanTransitionTo encodes the monotonic Pending → In Progress → Completed
// state machine. Same-status writes are allowed (treated as no-ops upstream),
// backward moves are not.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case RequestPending:
		return next == RequestInProgress || next == RequestCompleted
	case RequestInProgress:
		return next == RequestCompleted
	default:
		return false
	}
}

type RequestType string

const (
	TypeElectrical RequestType = "Electrical"
	TypePlumbing   RequestType = "Plumbing"
	TypeHVAC       RequestType = "HVAC"
	TypeIT         RequestType = "IT"
	TypeCleaning   RequestType = "Cleaning"
	TypeOther      RequestType = "Other"
)

func (t RequestType) IsValid() bool {
	switch t {
	case TypeElectrical, TypePlumbing, TypeHVAC, TypeIT, TypeCleaning, TypeOther:
		return true
	}
	return false
}

type RequestPriority string

const (
	PriorityLow      RequestPriority = "Low"
	PriorityMedium   RequestPriority = "Medium"
	PriorityHigh     RequestPriority = "High"
	PriorityCritical RequestPriority = "Critical"
)

func (p RequestPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// MaintenanceRequest is editable by its submitter only while Pending;
// status and assignment are mutated by technician/manager/admin.
type MaintenanceRequest struct {
	ID            int64           `gorm:"column:id;primaryKey" json:"id"`
	Title         string          `gorm:"column:title;size:100" json:"title"`
	Type          RequestType     `gorm:"column:type;size:20" json:"type"`
	Priority      RequestPriority `gorm:"column:priority;size:20" json:"priority"`
	Location      string          `gorm:"column:location;size:100" json:"location"`
	Description   string          `gorm:"column:description;size:500" json:"description"`
	Status        RequestStatus   `gorm:"column:status;size:20;default:Pending;index" json:"status"`
	SubmittedByID int64           `gorm:"column:submitted_by;index" json:"submitted_by"`
	AssignedToID  *int64          `gorm:"column:assigned_to;index" json:"assigned_to,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at" json:"updated_at"`

	SubmittedBy *User `gorm:"foreignKey:SubmittedByID" json:"submitted_by_user,omitempty"`
	AssignedTo  *User `gorm:"foreignKey:AssignedToID" json:"assigned_to_user,omitempty"`
}

func (MaintenanceRequest) TableName() string { return "maintenance_requests" }

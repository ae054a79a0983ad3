package maintenance

import "facilityhub/internal/domain"

type CreateRequestInput struct {
	Title       string                 `json:"title" binding:"required,max=100"`
	Type        domain.RequestType     `json:"type" binding:"required"`
	Priority    domain.RequestPriority `json:"priority" binding:"required"`
	Location    string                 `json:"location" binding:"required,max=100"`
	Description string                 `json:"description" binding:"required,max=500"`
}

// UpdateRequestInput carries field edits; nil means "leave unchanged".
// Status is deliberately absent; it moves through UpdateStatusInput only.
type UpdateRequestInput struct {
	Title       *string                 `json:"title" binding:"omitempty,max=100"`
	Type        *domain.RequestType     `json:"type"`
	Priority    *domain.RequestPriority `json:"priority"`
	Location    *string                 `json:"location" binding:"omitempty,max=100"`
	Description *string                 `json:"description" binding:"omitempty,max=500"`
}

type UpdateStatusInput struct {
	Status domain.RequestStatus `json:"status" binding:"required"`
}

type AssignTechnicianInput struct {
	TechnicianID int64 `json:"technicianId" binding:"required"`
}

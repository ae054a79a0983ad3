package maintenance

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("request not found")
	ErrNotSubmitter      = errors.New("only the request submitter can update this request")
	ErrNotEditable       = errors.New("cannot edit request that is not pending")
	ErrNotAssigned       = errors.New("request is not assigned to you")
	ErrForbidden         = errors.New("not authorized")
	ErrNotTechnician     = errors.New("assignee is not an active technician")
	ErrInvalidTransition = errors.New("invalid status transition")
)

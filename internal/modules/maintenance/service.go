package maintenance

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"facilityhub/internal/domain"
	"facilityhub/internal/realtime"
	"facilityhub/internal/repository"
)

// Service owns the MaintenanceRequest state machine:
// Pending →(assign)→ In Progress →(complete)→ Completed, with Pending also
// directly settable to In Progress or Completed by an authorized update.
type Service struct {
	requests RequestRepository
	users    UserDirectory
	notifs   Notifier
	live     Broadcaster
	log      *logrus.Logger
}

func NewService(requests RequestRepository, users UserDirectory, notifs Notifier, live Broadcaster, log *logrus.Logger) *Service {
	return &Service{
		requests: requests,
		users:    users,
		notifs:   notifs,
		live:     live,
		log:      log,
	}
}

func (s *Service) CreateRequest(ctx context.Context, submitterID int64, in CreateRequestInput) (*domain.MaintenanceRequest, error) {
	if !in.Type.IsValid() || !in.Priority.IsValid() {
		return nil, ErrValidation
	}

	submitter, err := s.users.GetByID(ctx, submitterID)
	if err != nil {
		return nil, err
	}

	req := &domain.MaintenanceRequest{
		Title:         in.Title,
		Type:          in.Type,
		Priority:      in.Priority,
		Location:      in.Location,
		Description:   in.Description,
		Status:        domain.RequestPending,
		SubmittedByID: submitterID,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.notifs.RequestCreated(req, submitter.DisplayName())
	return req, nil
}

func (s *Service) GetRequest(ctx context.Context, id, actorID int64, actorRole domain.Role) (*domain.MaintenanceRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Employees only see their own requests; technicians need details of any
	// request, managers and admins see everything.
	if actorRole == domain.RoleEmployee && req.SubmittedByID != actorID {
		return nil, ErrForbidden
	}
	return req, nil
}

func (s *Service) GetMyRequests(ctx context.Context, userID int64) ([]domain.MaintenanceRequest, error) {
	return s.requests.ListBySubmitter(ctx, userID)
}

func (s *Service) GetAllRequests(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	return s.requests.ListAll(ctx)
}

func (s *Service) GetStats(ctx context.Context) (*repository.RequestStats, error) {
	return s.requests.Stats(ctx)
}

// UpdateRequest applies field edits. Only the original submitter may edit,
// and only while the request is still Pending.
func (s *Service) UpdateRequest(ctx context.Context, id, actorID int64, in UpdateRequestInput) (*domain.MaintenanceRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.SubmittedByID != actorID {
		return nil, ErrNotSubmitter
	}
	if req.Status != domain.RequestPending {
		return nil, ErrNotEditable
	}

	if in.Type != nil && !in.Type.IsValid() {
		return nil, ErrValidation
	}
	if in.Priority != nil && !in.Priority.IsValid() {
		return nil, ErrValidation
	}

	if in.Title != nil {
		req.Title = *in.Title
	}
	if in.Type != nil {
		req.Type = *in.Type
	}
	if in.Priority != nil {
		req.Priority = *in.Priority
	}
	if in.Location != nil {
		req.Location = *in.Location
	}
	if in.Description != nil {
		req.Description = *in.Description
	}

	if err := s.requests.Save(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateStatus moves the request along the state machine. Technicians may
// only act on requests assigned to them. The live request_updated broadcast
// happens before the HTTP response; the per-recipient notifications run
// detached.
func (s *Service) UpdateStatus(ctx context.Context, id, actorID int64, actorRole domain.Role, newStatus domain.RequestStatus) (*domain.MaintenanceRequest, error) {
	if !newStatus.IsValid() {
		return nil, ErrValidation
	}
	if !actorRole.In(domain.RoleTechnician, domain.RoleManager, domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	req, err := s.requests.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if actorRole == domain.RoleTechnician {
		if req.AssignedToID == nil || *req.AssignedToID != actorID {
			return nil, ErrNotAssigned
		}
	}

	prev := req.Status
	if !prev.CanTransitionTo(newStatus) {
		return nil, ErrInvalidTransition
	}

	req.Status = newStatus
	if err := s.requests.Save(ctx, req); err != nil {
		return nil, err
	}

	s.broadcastUpdated(req)

	if prev != newStatus {
		if newStatus == domain.RequestCompleted {
			s.notifs.RequestCompleted(req)
		} else {
			s.notifs.RequestStatusChanged(req)
		}
	}
	return req, nil
}

// AssignTechnician sets the assignee and forces the request into In
// Progress. Completed requests cannot be reassigned.
func (s *Service) AssignTechnician(ctx context.Context, id, technicianID int64) (*domain.MaintenanceRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Status == domain.RequestCompleted {
		return nil, ErrInvalidTransition
	}

	technician, err := s.users.GetByID(ctx, technicianID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotTechnician
	}
	if err != nil {
		return nil, err
	}
	if technician.Role != domain.RoleTechnician || !technician.IsActive {
		return nil, ErrNotTechnician
	}

	req.AssignedToID = &technicianID
	req.Status = domain.RequestInProgress
	if err := s.requests.Save(ctx, req); err != nil {
		return nil, err
	}

	s.broadcastUpdated(req)
	s.notifs.RequestAssigned(req, technician)
	return req, nil
}

func (s *Service) broadcastUpdated(req *domain.MaintenanceRequest) {
	if err := s.live.Broadcast(realtime.EventRequestUpdated, req); err != nil {
		s.log.WithError(err).Warn("request_updated broadcast failed")
	}
}

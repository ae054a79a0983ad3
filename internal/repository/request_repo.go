package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"facilityhub/internal/domain"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	var req domain.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("SubmittedBy").
		Preload("AssignedTo").
		First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) ListBySubmitter(ctx context.Context, userID int64) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("SubmittedBy").
		Preload("AssignedTo").
		Where("submitted_by = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *RequestRepository) ListAll(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("SubmittedBy").
		Preload("AssignedTo").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// Save persists all mutable fields of an already-loaded request.
func (r *RequestRepository) Save(ctx context.Context, req *domain.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

type RequestStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

func (r *RequestRepository) Stats(ctx context.Context) (*RequestStats, error) {
	var stats RequestStats
	model := r.db.WithContext(ctx).Model(&domain.MaintenanceRequest{})

	if err := model.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	counts := []struct {
		status domain.RequestStatus
		dst    *int64
	}{
		{domain.RequestPending, &stats.Pending},
		{domain.RequestInProgress, &stats.InProgress},
		{domain.RequestCompleted, &stats.Completed},
	}
	for _, c := range counts {
		if err := model.Session(&gorm.Session{}).Where("status = ?", c.status).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"participation-api/internal/domain"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
}

// meetingRepositoryImpl is the GORM implementation of MeetingRepository
type meetingRepositoryImpl struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new instance of MeetingRepository
func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &meetingRepositoryImpl{db: db}
}

// Create creates a new meeting
func (r *meetingRepositoryImpl) Create(ctx context.Context, meeting *domain.Meeting) error {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a meeting by its ID
func (r *meetingRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	var meeting domain.Meeting
	if err := r.db.WithContext(ctx).First(&meeting, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &meeting, nil
}

package repository

import (
	"Pulse/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OnboardingRepo interface {
	SaveOrUpdateOnboarding(ctx context.Context, onboarding *model.OnboardingResponse) error
	GetOnboardingByProjectID(ctx context.Context, projectID uint64) (*model.OnboardingResponse, error)
}

type onboardingRepoImpl struct {
	db *gorm.DB
}

func NewOnboardingRepo(db *gorm.DB) OnboardingRepo {
	return &onboardingRepoImpl{db: db}
}

func (s *onboardingRepoImpl) SaveOrUpdateOnboarding(ctx context.Context, onboarding *model.OnboardingResponse) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"brand_tone",
			"goals",
			"target_audience",
			"competitors",
			"design_style",
			"completed",
			"updated_at",
		}),
	}).Create(onboarding).Error
}

func (s *onboardingRepoImpl) GetOnboardingByProjectID(ctx context.Context, projectID uint64) (*model.OnboardingResponse, error) {
	var onboarding model.OnboardingResponse
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		First(&onboarding).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &onboarding, nil
}

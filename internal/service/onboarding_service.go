package service

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type OnboardingService interface {
	// SaveOnboarding 保存问卷，同一项目重复提交会覆盖
	SaveOnboarding(ctx context.Context, subject string, projectID uint64, in *dto.OnboardingDTO) (*dto.OnboardingDTO, error)
	// GetOnboarding 未填写时返回 nil
	GetOnboarding(ctx context.Context, subject string, projectID uint64) (*dto.OnboardingDTO, error)
}

type onboardingServiceImpl struct {
	projectRepo    repository.ProjectRepo
	onboardingRepo repository.OnboardingRepo
}

func NewOnboardingService(projectRepo repository.ProjectRepo, onboardingRepo repository.OnboardingRepo) OnboardingService {
	return &onboardingServiceImpl{
		projectRepo:    projectRepo,
		onboardingRepo: onboardingRepo,
	}
}

func (s *onboardingServiceImpl) SaveOnboarding(ctx context.Context, subject string, projectID uint64, in *dto.OnboardingDTO) (*dto.OnboardingDTO, error) {
	if _, err := ownedProject(ctx, s.projectRepo, subject, projectID); err != nil {
		return nil, err
	}
	if err := util.ValidateDTO(in); err != nil {
		return nil, ErrParamInvalid
	}

	onboarding := &model.OnboardingResponse{}
	if err := copier.Copy(onboarding, in); err != nil {
		return nil, err
	}
	onboarding.ProjectID = projectID

	if err := s.onboardingRepo.SaveOrUpdateOnboarding(ctx, onboarding); err != nil {
		return nil, err
	}
	return s.GetOnboarding(ctx, subject, projectID)
}

func (s *onboardingServiceImpl) GetOnboarding(ctx context.Context, subject string, projectID uint64) (*dto.OnboardingDTO, error) {
	if _, err := ownedProject(ctx, s.projectRepo, subject, projectID); err != nil {
		return nil, err
	}
	onboarding, err := s.onboardingRepo.GetOnboardingByProjectID(ctx, projectID)
	if err != nil || onboarding == nil {
		return nil, err
	}

	var out dto.OnboardingDTO
	if err = copier.Copy(&out, onboarding); err != nil {
		return nil, err
	}
	return &out, nil
}

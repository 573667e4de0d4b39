package repository

import (
	"Pulse/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProjectRepo interface {
	CreateProject(ctx context.Context, project *model.Project) error
	GetProjectByID(ctx context.Context, id uint64) (*model.Project, error)
	GetProjectByIgUserID(ctx context.Context, igUserID string) (*model.Project, error)
	ListProjectsByOwner(ctx context.Context, subject string) ([]*model.Project, error)
	ListProjectsWithInstagram(ctx context.Context) ([]*model.Project, error)
	ListOnboardedProjects(ctx context.Context) ([]*model.Project, error)
}

type projectRepoImpl struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepoImpl{db: db}
}

func (s *projectRepoImpl) CreateProject(ctx context.Context, project *model.Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

func (s *projectRepoImpl) GetProjectByID(ctx context.Context, id uint64) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (s *projectRepoImpl) GetProjectByIgUserID(ctx context.Context, igUserID string) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).
		Where("ig_user_id = ?", igUserID).
		Order("id ASC").
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (s *projectRepoImpl) ListProjectsByOwner(ctx context.Context, subject string) ([]*model.Project, error) {
	projects := make([]*model.Project, 0)
	err := s.db.WithContext(ctx).
		Where("owner_subject = ?", subject).
		Order("id DESC").
		Find(&projects).Error
	return projects, err
}

// ListProjectsWithInstagram 已绑定 Instagram 账号的项目
func (s *projectRepoImpl) ListProjectsWithInstagram(ctx context.Context) ([]*model.Project, error) {
	projects := make([]*model.Project, 0)
	err := s.db.WithContext(ctx).
		Where("ig_user_id <> '' AND ig_access_token <> ''").
		Order("id ASC").
		Find(&projects).Error
	return projects, err
}

// ListOnboardedProjects 已完成 onboarding 的项目
func (s *projectRepoImpl) ListOnboardedProjects(ctx context.Context) ([]*model.Project, error) {
	projects := make([]*model.Project, 0)
	err := s.db.WithContext(ctx).
		Joins("JOIN onboarding_responses ON onboarding_responses.project_id = projects.id").
		Where("onboarding_responses.completed = ?", true).
		Order("projects.id ASC").
		Find(&projects).Error
	return projects, err
}

package service

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/report"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"
	"strings"

	"github.com/jinzhu/copier"
)

type ProjectService interface {
	// CreateProject 为调用方创建项目，未指定套餐时为 trial
	CreateProject(ctx context.Context, subject string, in *dto.CreateProjectDTO) (*dto.ProjectDTO, error)
	// ListMyProjects 列出调用方名下的项目
	ListMyProjects(ctx context.Context, subject string) ([]*dto.ProjectDTO, error)
	GetProject(ctx context.Context, subject string, projectID uint64) (*dto.ProjectDTO, error)
}

type projectServiceImpl struct {
	projectRepo repository.ProjectRepo
}

func NewProjectService(projectRepo repository.ProjectRepo) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
	}
}

func (s *projectServiceImpl) CreateProject(ctx context.Context, subject string, in *dto.CreateProjectDTO) (*dto.ProjectDTO, error) {
	if subject == "" {
		return nil, ErrUnauthorized
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := util.ValidateDTO(in); err != nil || in.Name == "" {
		return nil, ErrParamInvalid
	}

	plan := in.Plan
	if plan == "" {
		plan = report.PlanTrial
	}
	if !report.ValidPlan(plan) {
		return nil, ErrParamInvalid
	}

	project := &model.Project{
		OwnerSubject:  subject,
		Name:          in.Name,
		Plan:          plan,
		IgUserID:      in.IgUserID,
		IgAccessToken: in.IgAccessToken,
	}
	if err := s.projectRepo.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return toProjectDTO(project)
}

func (s *projectServiceImpl) ListMyProjects(ctx context.Context, subject string) ([]*dto.ProjectDTO, error) {
	if subject == "" {
		return nil, ErrUnauthorized
	}
	projects, err := s.projectRepo.ListProjectsByOwner(ctx, subject)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		d, err := toProjectDTO(p)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, nil
}

func (s *projectServiceImpl) GetProject(ctx context.Context, subject string, projectID uint64) (*dto.ProjectDTO, error) {
	project, err := ownedProject(ctx, s.projectRepo, subject, projectID)
	if err != nil {
		return nil, err
	}
	return toProjectDTO(project)
}

func toProjectDTO(p *model.Project) (*dto.ProjectDTO, error) {
	var out dto.ProjectDTO
	if err := copier.Copy(&out, p); err != nil {
		return nil, err
	}
	out.IgConnected = p.IgUserID != "" && p.IgAccessToken != ""
	return &out, nil
}

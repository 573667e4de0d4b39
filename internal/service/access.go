package service

import (
	"Pulse/internal/model"
	"Pulse/internal/repository"
	"context"
)

// ownedProject 加载项目并校验调用方是否为所有者
func ownedProject(ctx context.Context, projectRepo repository.ProjectRepo, subject string, projectID uint64) (*model.Project, error) {
	if subject == "" {
		return nil, ErrUnauthorized
	}
	project, err := projectRepo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if project.OwnerSubject != subject {
		return nil, ErrUnauthorized
	}
	return project, nil
}

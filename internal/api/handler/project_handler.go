package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/response"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectSvc    service.ProjectService
	onboardingSvc service.OnboardingService
}

func NewProjectHandler(projectSvc service.ProjectService, onboardingSvc service.OnboardingService) *ProjectHandler {
	return &ProjectHandler{
		projectSvc:    projectSvc,
		onboardingSvc: onboardingSvc,
	}
}

func (s *ProjectHandler) CreateProject(c *gin.Context) {
	var in dto.CreateProjectDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, err)
		return
	}
	project, err := s.projectSvc.CreateProject(c.Request.Context(), getSubject(c), &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

func (s *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := s.projectSvc.ListMyProjects(c.Request.Context(), getSubject(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}

func (s *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	project, err := s.projectSvc.GetProject(c.Request.Context(), getSubject(c), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

func (s *ProjectHandler) SaveOnboarding(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var in dto.OnboardingDTO
	if err = c.ShouldBindJSON(&in); err != nil {
		response.Error(c, err)
		return
	}
	onboarding, err := s.onboardingSvc.SaveOnboarding(c.Request.Context(), getSubject(c), projectID, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, onboarding)
}

func (s *ProjectHandler) GetOnboarding(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	onboarding, err := s.onboardingSvc.GetOnboarding(c.Request.Context(), getSubject(c), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, onboarding)
}

package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/response"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit  = 20
	defaultLogPage    = 1
	defaultLogPerPage = 20
)

type ReportHandler struct {
	reportSvc service.ReportService
}

func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

func (s *ReportHandler) Generate(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var in dto.GenerateReportDTO
	if err = c.ShouldBindJSON(&in); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.reportSvc.GenerateReport(c.Request.Context(), getSubject(c), projectID, in.ReportType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *ReportHandler) GetLatest(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	latest, err := s.reportSvc.GetLatestReport(c.Request.Context(), getSubject(c), projectID, c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, latest)
}

func (s *ReportHandler) List(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, err := parseIntQuery(c, "limit", defaultListLimit)
	if err != nil {
		response.Error(c, err)
		return
	}
	reports, err := s.reportSvc.ListReports(c.Request.Context(), getSubject(c), projectID, c.Query("type"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reports)
}

func (s *ReportHandler) Quota(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	quota, err := s.reportSvc.CheckRateLimit(c.Request.Context(), getSubject(c), projectID, c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, quota)
}

func (s *ReportHandler) Search(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var in dto.ReportSearchDTO
	if err = c.ShouldBindQuery(&in); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.reportSvc.SearchReports(c.Request.Context(), getSubject(c), projectID, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *ReportHandler) Export(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	reportID, err := parseIDParam(c, "report_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.reportSvc.ExportReport(c.Request.Context(), getSubject(c), projectID, reportID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *ReportHandler) ListGenerations(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := parseIntQuery(c, "page", defaultLogPage)
	if err != nil {
		response.Error(c, err)
		return
	}
	pageSize, err := parseIntQuery(c, "pageSize", defaultLogPerPage)
	if err != nil {
		response.Error(c, err)
		return
	}
	logs, err := s.reportSvc.ListGenerations(c.Request.Context(), getSubject(c), projectID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, logs)
}

package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/response"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
)

type MetricHandler struct {
	metricSvc service.MetricService
}

func NewMetricHandler(metricSvc service.MetricService) *MetricHandler {
	return &MetricHandler{metricSvc: metricSvc}
}

func (s *MetricHandler) UpsertMetrics(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var in dto.MetricBatchDTO
	if err = c.ShouldBindJSON(&in); err != nil {
		response.Error(c, err)
		return
	}
	n, err := s.metricSvc.UpsertMetrics(c.Request.Context(), getSubject(c), projectID, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int{"saved": n})
}

func (s *MetricHandler) GetMetrics(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	days, err := parseIntQuery(c, "days", service.DefaultMetricDays)
	if err != nil {
		response.Error(c, err)
		return
	}
	metrics, err := s.metricSvc.GetRecentMetrics(c.Request.Context(), getSubject(c), projectID, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}

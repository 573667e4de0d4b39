package handler

import (
	"Pulse/internal/pkg/logger"
	"Pulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

func getSubject(c *gin.Context) string {
	return c.GetString(logger.SubjectKey)
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}

// parseIntQuery 缺省时返回 def，非数字时报参数错误
func parseIntQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, service.ErrParamInvalid
	}
	return v, nil
}

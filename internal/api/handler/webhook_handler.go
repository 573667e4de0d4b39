package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/response"
	"Pulse/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	webhookSvc service.WebhookService
}

func NewWebhookHandler(webhookSvc service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookSvc: webhookSvc}
}

// Verify 订阅校验，成功时原样返回 challenge 纯文本
func (s *WebhookHandler) Verify(c *gin.Context) {
	mode := queryEither(c, "hub.mode", "mode")
	token := queryEither(c, "hub.verify_token", "verify_token")
	challenge := queryEither(c, "hub.challenge", "challenge")

	out, err := s.webhookSvc.VerifySubscription(mode, token, challenge)
	if err != nil {
		c.String(http.StatusForbidden, "forbidden")
		return
	}
	c.String(http.StatusOK, out)
}

// Receive 该接口由外部系统调用，HTTP 状态码与业务码一致
func (s *WebhookHandler) Receive(c *gin.Context) {
	var in dto.InstagramWebhookDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Code: response.BadRequest, Message: "参数错误"})
		return
	}

	err := s.webhookSvc.AcceptMetrics(c.Request.Context(), &in)
	switch {
	case err == nil:
		response.Success(c, nil)
	case errors.Is(err, service.ErrWebhookForbidden):
		c.JSON(http.StatusForbidden, dto.Response{Code: response.Forbidden, Message: err.Error()})
	case errors.Is(err, service.ErrParamInvalid):
		c.JSON(http.StatusBadRequest, dto.Response{Code: response.BadRequest, Message: err.Error()})
	default:
		log.ErrorContext(c.Request.Context(), "publish webhook metrics error", "err", err)
		c.JSON(http.StatusInternalServerError, dto.Response{Code: response.InternalServerError, Message: service.UnExpectedError.Error()})
	}
}

func queryEither(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}

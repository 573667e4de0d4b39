package service

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/util"
	"context"
	"crypto/subtle"

	"github.com/goccy/go-json"
)

// MetricPublisher 将 webhook 负载投递到消息队列
type MetricPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type WebhookService interface {
	// VerifySubscription 订阅校验，成功时返回 challenge 原文
	VerifySubscription(mode, token, challenge string) (string, error)
	// AcceptMetrics 校验共享密钥后投递到 Kafka，实际写库由消费者完成
	AcceptMetrics(ctx context.Context, payload *dto.InstagramWebhookDTO) error
}

type webhookServiceImpl struct {
	verifyToken string
	secret      string
	publisher   MetricPublisher
}

func NewWebhookService(verifyToken, secret string, publisher MetricPublisher) WebhookService {
	return &webhookServiceImpl{
		verifyToken: verifyToken,
		secret:      secret,
		publisher:   publisher,
	}
}

func (s *webhookServiceImpl) VerifySubscription(mode, token, challenge string) (string, error) {
	if mode != consts.WebhookModeSubscribe || !secureEqual(token, s.verifyToken) {
		return "", ErrWebhookForbidden
	}
	return challenge, nil
}

func (s *webhookServiceImpl) AcceptMetrics(ctx context.Context, payload *dto.InstagramWebhookDTO) error {
	if !secureEqual(payload.Secret, s.secret) {
		return ErrWebhookForbidden
	}
	if err := util.ValidateDTO(payload); err != nil {
		return ErrParamInvalid
	}

	// 密钥不进入消息队列
	msg := *payload
	msg.Secret = ""
	value, err := json.Marshal(&msg)
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, payload.IgUserID, value)
}

// secureEqual 常量时间比较，未配置期望值时一律拒绝
func secureEqual(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

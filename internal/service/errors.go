package service

import (
	"Pulse/internal/pkg/report"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	PreconditionFailed  = 412
	UnprocessableEntity = 422
	TooManyRequests     = 429
	InternalServerError = 500
	BadGateway          = 502
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUnauthorized         = errors.New("无权访问该项目")
	ErrProjectNotFound      = errors.New("项目不存在")
	ErrReportNotFound       = errors.New("报告不存在")
	ErrGenerationInProgress = errors.New("同类报告正在生成中，请稍后")
	ErrOnboardingIncomplete = errors.New("请先完成项目问卷")
	ErrRateLimitExceeded    = errors.New("今日该类报告生成次数已用完")
	ErrWebhookForbidden     = errors.New("webhook 校验失败")
	ErrUnknownIgAccount     = errors.New("未绑定的 Instagram 账号")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:               BadRequest,
	ErrUnauthorized:               Unauthorized,
	ErrProjectNotFound:            NotFound,
	ErrReportNotFound:             NotFound,
	ErrGenerationInProgress:       Conflict,
	ErrOnboardingIncomplete:       PreconditionFailed,
	ErrRateLimitExceeded:          TooManyRequests,
	ErrWebhookForbidden:           Forbidden,
	ErrUnknownIgAccount:           NotFound,
	report.ErrUnknownReportType:   BadRequest,
	report.ErrCompletionTransport: BadGateway,
	UnExpectedError:               InternalServerError,
}

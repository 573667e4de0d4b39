package api

import "Pulse/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ProjectHandler *handler.ProjectHandler
	MetricHandler  *handler.MetricHandler
	ReportHandler  *handler.ReportHandler
	WebhookHandler *handler.WebhookHandler
}

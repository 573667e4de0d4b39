package consts

const (
	// MetricDateLayout 指标日期的传输格式
	MetricDateLayout = "2006-01-02"
)

const (
	WebhookModeSubscribe = "subscribe"
)

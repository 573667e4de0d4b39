package logger

import (
	"Pulse/internal/api/config"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupGin 注册访问日志与 panic 恢复
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/api/ping"},
		Formatter: func(p gin.LogFormatterParams) string {
			var traceID, subject string
			if p.Keys != nil {
				traceID, _ = p.Keys[TraceIDKey].(string)
				subject, _ = p.Keys[SubjectKey].(string)
			}
			if traceID == "" && p.Request != nil {
				traceID, _ = p.Request.Context().Value(TraceIDKey).(string)
			}

			var token, index string
			if config.Cfg != nil {
				token = config.Cfg.Logstash.Token
				index = config.Cfg.Logstash.Index
			}

			return fmt.Sprintf(
				`{"time":"%s","level":"INFO","msg":"GIN_ACCESS","trace_id":"%s","subject":"%s","log_token":"%s","target_index":"%s","method":"%s","path":"%s","status":%d,"latency":"%v","client_ip":"%s"}`+"\n",
				p.TimeStamp.Format(time.RFC3339),
				traceID,
				subject,
				token,
				index,
				p.Method,
				p.Path,
				p.StatusCode,
				p.Latency,
				p.ClientIP,
			)
		},
	}))

	r.Use(gin.Recovery())
}

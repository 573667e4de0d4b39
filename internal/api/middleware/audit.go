package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const auditBodyLimit = 16384

// 请求体中不落日志的字段
var redactedFields = []string{"secret", "igAccessToken", "ig_access_token"}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < auditBodyLimit {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 记录请求与响应，敏感字段打码
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var reqBody []byte
		if c.Request.Body != nil {
			reqBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBody))
		}

		query := c.Request.URL.Query()
		for _, k := range []string{"hub.verify_token", "verify_token"} {
			if query.Has(k) {
				query.Set(k, "***")
			}
		}
		decodedQuery, err := url.QueryUnescape(query.Encode())
		if err != nil {
			decodedQuery = c.Request.URL.RawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodedQuery),
			log.String("req_body", redactBody(reqBody)),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.String("res_body", w.body.String()),
		)
	}
}

func redactBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		if len(body) > auditBodyLimit {
			return string(body[:auditBodyLimit])
		}
		return string(body)
	}
	for _, f := range redactedFields {
		if _, ok := m[f]; ok {
			m[f] = "***"
		}
	}
	out, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(out)
}

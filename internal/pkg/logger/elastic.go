package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

const (
	esSlowThreshold = 500 * time.Millisecond
	esBodyLimit     = 1000
)

// ESTransport 记录 Elasticsearch 请求与响应
type ESTransport struct {
	Transport http.RoundTripper
}

func (t *ESTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	reqBody := drainBody(&req.Body)

	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("method", req.Method),
		log.String("url", req.URL.String()),
		log.Duration("latency", elapsed),
		log.String("req_body", truncate(reqBody)),
	}

	if err != nil {
		log.ErrorContext(req.Context(), "ES_QUERY_ERROR", append(fields, log.Any("err", err))...)
		return nil, err
	}

	resBody := drainBody(&resp.Body)
	fields = append(fields, log.Int("status", resp.StatusCode), log.String("res_body", truncate(resBody)))

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		log.ErrorContext(req.Context(), "ES_QUERY_FAILED", fields...)
	case elapsed > esSlowThreshold:
		log.WarnContext(req.Context(), "ES_QUERY_SLOW", fields...)
	default:
		log.InfoContext(req.Context(), "ES_QUERY", fields...)
	}

	return resp, nil
}

// drainBody 读出 body 并放回可重复读取的副本
func drainBody(body *io.ReadCloser) []byte {
	if *body == nil || *body == http.NoBody {
		return nil
	}
	data, _ := io.ReadAll(*body)
	_ = (*body).Close()
	*body = io.NopCloser(bytes.NewReader(data))
	return data
}

func truncate(b []byte) string {
	if len(b) > esBodyLimit {
		return string(b[:esBodyLimit]) + "...[truncated]"
	}
	return string(b)
}

package response

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/report"
	"Pulse/internal/service"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) dto.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	Error(c, err)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestError_Codes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrParamInvalid, 400},
		{service.ErrUnauthorized, 401},
		{service.ErrProjectNotFound, 404},
		{service.ErrGenerationInProgress, 409},
		{service.ErrOnboardingIncomplete, 412},
		{service.ErrRateLimitExceeded, 429},
		{service.ErrWebhookForbidden, 403},
		{report.ErrUnknownReportType, 400},
		{fmt.Errorf("%w: 502 bad gateway", report.ErrCompletionTransport), 502},
		{errors.New("boom"), 500},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, render(t, tc.err).Code, tc.err.Error())
	}
}

func TestError_ValidationFailed(t *testing.T) {
	resp := render(t, &report.ValidationFailedError{Errors: []string{"Must have at least 5 tasks"}})
	assert.Equal(t, 422, resp.Code)
	assert.Equal(t, []any{"Must have at least 5 tasks"}, resp.Data)
}

func TestError_HidesInternalDetail(t *testing.T) {
	resp := render(t, errors.New("dial tcp 10.0.0.3:3306: connection refused"))
	assert.Equal(t, service.UnExpectedError.Error(), resp.Message)
}

func TestError_MalformedJSONBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	bodies := []string{`{"reportType":`, `{"reportType": 7}`, `not json`, ``}
	for _, body := range bodies {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		var in dto.GenerateReportDTO
		err := c.ShouldBindJSON(&in)
		require.Error(t, err)
		Error(c, err)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, BadRequest, resp.Code, body)
	}

	var target struct{ N int }
	assert.Equal(t, BadRequest, render(t, stdjson.Unmarshal([]byte(`{"N":"x"}`), &target)).Code)
	assert.Equal(t, BadRequest, render(t, json.Unmarshal([]byte(`{"N":`), &target)).Code)
}

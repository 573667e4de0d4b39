package response

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/report"
	"Pulse/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// Error 将错误映射为业务码
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, "参数错误")
		return
	}

	if isMalformedJSON(err) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	var vfe *report.ValidationFailedError
	if errors.As(err, &vfe) {
		c.JSON(http.StatusOK, dto.Response{
			Code:    service.UnprocessableEntity,
			Message: vfe.Error(),
			Data:    vfe.Errors,
		})
		return
	}

	for target, code := range service.ErrorMap {
		if errors.Is(err, target) {
			if code >= InternalServerError {
				log.ErrorContext(c.Request.Context(), "Error", "err", err)
			}
			Fail(c, code, target.Error())
			return
		}
	}

	log.ErrorContext(c.Request.Context(), "Error", "err", err)
	Fail(c, InternalServerError, service.UnExpectedError.Error())
}

// isMalformedJSON gin 绑定走 encoding/json，业务代码走 goccy/go-json，两边的解析错误都算参数错误
func isMalformedJSON(err error) bool {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var stdTypeErr *stdjson.UnmarshalTypeError
	var stdSyntaxErr *stdjson.SyntaxError
	return errors.As(err, &typeErr) ||
		errors.As(err, &syntaxErr) ||
		errors.As(err, &stdTypeErr) ||
		errors.As(err, &stdSyntaxErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

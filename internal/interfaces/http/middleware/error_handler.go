package middleware

import (
	"net/http"

	apperrors "github.com/easayliu/url-tree/internal/shared/errors"
	"github.com/easayliu/url-tree/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// 捕获handler中设置的错误,自动转换为合适的HTTP响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if serviceErr, ok := apperrors.AsServiceError(err); ok {
			statusCode := mapErrorCodeToHTTPStatus(serviceErr.Code)
			c.JSON(statusCode, gin.H{
				"error":   serviceErr.Message,
				"code":    serviceErr.Code,
				"details": serviceErr.Details,
			})
			return
		}

		// 未知错误,返回500
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"code":  apperrors.ErrorCodeInternalError,
		})
	}
}

// mapErrorCodeToHTTPStatus 将业务错误码映射到HTTP状态码
func mapErrorCodeToHTTPStatus(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrorCodeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.ErrorCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrorCodeUpstreamTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrorCodeUpstreamBadGateway:
		return http.StatusBadGateway
	case apperrors.ErrorCodeUpstreamUnreachable:
		return http.StatusServiceUnavailable
	case apperrors.ErrorCodeMalformedURL:
		// 上游返回了无法解析的数据
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RecoverMiddleware 恢复中间件 - 捕获panic并转换为500错误
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered", "error", err, "path", c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  apperrors.ErrorCodeInternalError,
				})
			}
		}()
		c.Next()
	}
}

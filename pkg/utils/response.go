package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一的成功响应包装,错误由ErrorHandlerMiddleware渲染
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

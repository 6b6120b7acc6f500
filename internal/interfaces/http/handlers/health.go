package handlers

import (
	"net/http"

	"github.com/easayliu/url-tree/internal/application/contracts"
	"github.com/easayliu/url-tree/internal/application/dto"
	"github.com/gin-gonic/gin"
)

// HealthCheck 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态;缓存过期或为空时status为degraded,但仍返回200
// @Tags 健康检查
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	state := GetContainer(c).GetTreeService().Status().State

	resp := dto.HealthResponse{
		Status:     "ok",
		Message:    "URL tree service is running",
		CacheState: state,
	}
	if state != contracts.CacheStateFresh {
		resp.Status = "degraded"
	}

	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/easayliu/url-tree/internal/application/contracts"
	"github.com/easayliu/url-tree/internal/application/dto"
	"github.com/easayliu/url-tree/internal/application/services"
	"github.com/easayliu/url-tree/pkg/utils"
	"github.com/gin-gonic/gin"
)

// BuiltAtHeader 目录树快照的构建时间(RFC3339)
const BuiltAtHeader = "X-Tree-Built-At"

// TreeHandler 目录树处理器
type TreeHandler struct {
	container *services.ServiceContainer
}

// NewTreeHandler 创建目录树处理器
func NewTreeHandler(container *services.ServiceContainer) *TreeHandler {
	return &TreeHandler{
		container: container,
	}
}

// GetTree 获取目录树
// @Summary 获取目录树
// @Description 返回按主机分组的目录树;缓存过期时同步重建,重建失败返回对应的上游错误
// @Tags 目录树
// @Produce json
// @Success 200 {object} map[string]interface{} "目录树,形如 {\"host\": [\"file\", {\"dir\": [...]}]}"
// @Failure 502 {object} map[string]interface{} "上游网关错误或返回了无法解析的URL"
// @Failure 503 {object} map[string]interface{} "上游无响应"
// @Failure 504 {object} map[string]interface{} "上游超时"
// @Failure 500 {object} map[string]interface{} "其他错误"
// @Router /tree [get]
func (h *TreeHandler) GetTree(c *gin.Context) {
	snap, err := h.container.GetTreeService().GetSnapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Header(BuiltAtHeader, snap.BuiltAt.UTC().Format(time.RFC3339Nano))
	c.PureJSON(http.StatusOK, snap.Tree)
}

// GetStatus 获取缓存状态
// @Summary 获取缓存状态
// @Description 返回缓存状态(EMPTY/FRESH/STALE)、构建时间、条目统计、最近错误和后台刷新状态,不会触发重建
// @Tags 目录树
// @Produce json
// @Success 200 {object} utils.Response{data=dto.TreeStatusResponse}
// @Router /tree/status [get]
func (h *TreeHandler) GetStatus(c *gin.Context) {
	scheduler := h.container.GetSchedulerService()

	schedulerStatus := dto.SchedulerStatus{
		Running:             scheduler.IsRunning(),
		ConsecutiveFailures: scheduler.ConsecutiveFailures(),
	}
	if next := scheduler.NextRun(); !next.IsZero() {
		schedulerStatus.NextRun = &next
	}

	utils.Success(c, dto.NewTreeStatusResponse(h.container.GetTreeService().Status(), schedulerStatus))
}

// Refresh 强制重建目录树
// @Summary 强制重建目录树
// @Description 立即重建目录树;已有重建在进行时等待其结果
// @Tags 目录树
// @Produce json
// @Success 200 {object} utils.Response{data=dto.RefreshResponse}
// @Failure 502 {object} map[string]interface{} "上游网关错误或返回了无法解析的URL"
// @Failure 503 {object} map[string]interface{} "上游无响应"
// @Failure 504 {object} map[string]interface{} "上游超时"
// @Failure 500 {object} map[string]interface{} "其他错误"
// @Router /tree/refresh [post]
func (h *TreeHandler) Refresh(c *gin.Context) {
	start := time.Now()
	snap, err := h.container.GetTreeService().Refresh(c.Request.Context(), contracts.TriggerManual)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, dto.RefreshResponse{
		Trigger:    contracts.TriggerManual,
		BuiltAt:    snap.BuiltAt,
		Stats:      snap.Stats,
		EntryCount: snap.Stats.Entries(),
		DurationMs: time.Since(start).Milliseconds(),
	})
}

package dto

import (
	"time"

	"github.com/easayliu/url-tree/internal/application/contracts"
	"github.com/easayliu/url-tree/internal/domain/models/tree"
)

// SchedulerStatus 后台刷新状态
type SchedulerStatus struct {
	Running             bool       `json:"running"`
	NextRun             *time.Time `json:"next_run,omitempty"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
}

// TreeStatusResponse GET /tree/status 响应
type TreeStatusResponse struct {
	contracts.CacheStatus
	HostCount  int             `json:"host_count"`
	EntryCount int             `json:"entry_count"`
	Scheduler  SchedulerStatus `json:"scheduler"`
}

// RefreshResponse POST /tree/refresh 响应
type RefreshResponse struct {
	Trigger    contracts.RefreshTrigger `json:"trigger"`
	BuiltAt    time.Time                `json:"built_at"`
	Stats      tree.Stats               `json:"stats"`
	EntryCount int                      `json:"entry_count"`
	DurationMs int64                    `json:"duration_ms"`
}

// HealthResponse GET /health 响应
type HealthResponse struct {
	Status     string               `json:"status"`
	Message    string               `json:"message"`
	CacheState contracts.CacheState `json:"cache_state"`
}

// NewTreeStatusResponse 组装状态响应
func NewTreeStatusResponse(status contracts.CacheStatus, scheduler SchedulerStatus) TreeStatusResponse {
	return TreeStatusResponse{
		CacheStatus: status,
		HostCount:   status.Stats.Hosts,
		EntryCount:  status.Stats.Entries(),
		Scheduler:   scheduler,
	}
}

package contracts

import (
	"context"
	"time"

	"github.com/easayliu/url-tree/internal/domain/entities"
	"github.com/easayliu/url-tree/internal/domain/models/tree"
)

// ItemFetcher 上游数据源:按需返回当前完整的URL列表
type ItemFetcher interface {
	FetchItems(ctx context.Context) ([]entities.Item, error)
}

// ItemFetcherFunc 函数适配器
type ItemFetcherFunc func(ctx context.Context) ([]entities.Item, error)

func (f ItemFetcherFunc) FetchItems(ctx context.Context) ([]entities.Item, error) {
	return f(ctx)
}

// CacheState 缓存状态
type CacheState string

const (
	CacheStateEmpty CacheState = "EMPTY"
	CacheStateFresh CacheState = "FRESH"
	CacheStateStale CacheState = "STALE"
)

// RefreshTrigger 触发重建的来源
type RefreshTrigger string

const (
	TriggerRequest  RefreshTrigger = "request"
	TriggerSchedule RefreshTrigger = "schedule"
	TriggerManual   RefreshTrigger = "manual"
	TriggerWarmup   RefreshTrigger = "warmup"
)

// TreeSnapshot 已发布的目录树快照,发布后不再修改
type TreeSnapshot struct {
	Tree    *tree.Tree
	Stats   tree.Stats
	BuiltAt time.Time
}

// CacheStatus 缓存状态概览
type CacheStatus struct {
	State         CacheState `json:"state"`
	BuiltAt       *time.Time `json:"built_at,omitempty"`
	AgeMs         int64      `json:"age_ms"`
	TTLMs         int64      `json:"ttl_ms"`
	Stats         tree.Stats `json:"stats"`
	Rebuilding    bool       `json:"rebuilding"`
	LastError     string     `json:"last_error,omitempty"`
	LastErrorCode string     `json:"last_error_code,omitempty"`
	LastErrorAt   *time.Time `json:"last_error_at,omitempty"`
}

// TreeService 目录树缓存服务
type TreeService interface {
	// GetTree 返回当前目录树,快照过期或不存在时同步重建
	GetTree(ctx context.Context) (*tree.Tree, error)
	// GetSnapshot 同GetTree,但返回带构建时间的快照
	GetSnapshot(ctx context.Context) (*TreeSnapshot, error)
	// Refresh 无条件重建;与进行中的重建合并
	Refresh(ctx context.Context, trigger RefreshTrigger) (*TreeSnapshot, error)
	// Status 返回缓存状态,不触发任何I/O
	Status() CacheStatus
}

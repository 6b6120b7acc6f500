package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/easayliu/url-tree/internal/application/contracts"
	"github.com/easayliu/url-tree/internal/domain/models/tree"
	"github.com/easayliu/url-tree/internal/domain/services/treebuilder"
	"github.com/easayliu/url-tree/internal/infrastructure/metrics"
	apperrors "github.com/easayliu/url-tree/internal/shared/errors"
	"github.com/easayliu/url-tree/pkg/logger"
	"golang.org/x/sync/singleflight"
)

const rebuildKey = "tree"

var _ contracts.TreeService = (*TreeCacheService)(nil)

// TreeCacheService 目录树缓存
// 快照只通过原子指针整体替换;同一时刻最多一个重建在进行,并发调用者共享其结果
type TreeCacheService struct {
	fetcher contracts.ItemFetcher
	ttl     time.Duration
	now     func() time.Time

	snapshot   atomic.Pointer[contracts.TreeSnapshot]
	group      singleflight.Group
	rebuilding atomic.Bool

	mu          sync.Mutex
	lastErr     error
	lastErrTime time.Time
}

// TreeCacheOption 可选配置
type TreeCacheOption func(*TreeCacheService)

// WithClock 替换时间来源(测试用)
func WithClock(now func() time.Time) TreeCacheOption {
	return func(s *TreeCacheService) {
		s.now = now
	}
}

// NewTreeCacheService 创建目录树缓存服务
func NewTreeCacheService(fetcher contracts.ItemFetcher, ttl time.Duration, opts ...TreeCacheOption) *TreeCacheService {
	s := &TreeCacheService{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL 缓存有效期
func (s *TreeCacheService) TTL() time.Duration {
	return s.ttl
}

// GetTree 返回当前目录树
func (s *TreeCacheService) GetTree(ctx context.Context) (*tree.Tree, error) {
	snap, err := s.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Tree, nil
}

// GetSnapshot 快照新鲜时直接返回;不存在或已过期时同步重建
// 重建失败时保留旧快照,但不会返回过期数据
func (s *TreeCacheService) GetSnapshot(ctx context.Context) (*contracts.TreeSnapshot, error) {
	if snap := s.snapshot.Load(); snap != nil && s.isFresh(snap) {
		metrics.RecordCacheLookup(true)
		return snap, nil
	}
	metrics.RecordCacheLookup(false)
	return s.Refresh(ctx, contracts.TriggerRequest)
}

// Refresh 重建目录树并发布
// 已有重建在进行时直接等待其结果;ctx结束只会让调用者提前返回,不会中断重建本身
func (s *TreeCacheService) Refresh(ctx context.Context, trigger contracts.RefreshTrigger) (*contracts.TreeSnapshot, error) {
	buildCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(rebuildKey, func() (interface{}, error) {
		// 请求触发的重建在排队期间可能已被其他重建满足
		if trigger == contracts.TriggerRequest {
			if snap := s.snapshot.Load(); snap != nil && s.isFresh(snap) {
				return snap, nil
			}
		}
		return s.rebuild(buildCtx, trigger)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*contracts.TreeSnapshot), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *TreeCacheService) rebuild(ctx context.Context, trigger contracts.RefreshTrigger) (*contracts.TreeSnapshot, error) {
	s.rebuilding.Store(true)
	defer s.rebuilding.Store(false)

	start := time.Now()
	items, err := s.fetcher.FetchItems(ctx)
	if err != nil {
		if _, ok := apperrors.AsServiceError(err); !ok {
			err = apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeUpstreamOther, "failed to fetch source items", err)
		}
		return nil, s.fail(trigger, start, err)
	}

	t, err := treebuilder.FromItems(items)
	if err != nil {
		return nil, s.fail(trigger, start, err)
	}

	snap := &contracts.TreeSnapshot{
		Tree:    t,
		Stats:   t.Stats(),
		BuiltAt: s.now(),
	}
	s.snapshot.Store(snap)

	s.mu.Lock()
	s.lastErr = nil
	s.lastErrTime = time.Time{}
	s.mu.Unlock()

	duration := time.Since(start)
	metrics.RecordRebuild(string(trigger), "ok", duration)
	metrics.SetSnapshot(snap.Stats.Hosts, snap.Stats.Directories, snap.Stats.Files, snap.BuiltAt)
	logger.Info("Tree rebuilt",
		"trigger", trigger,
		"items", len(items),
		"hosts", snap.Stats.Hosts,
		"entries", snap.Stats.Entries(),
		"duration", duration)

	return snap, nil
}

func (s *TreeCacheService) fail(trigger contracts.RefreshTrigger, start time.Time, err error) error {
	code := apperrors.CodeOf(err)

	s.mu.Lock()
	s.lastErr = err
	s.lastErrTime = s.now()
	s.mu.Unlock()

	metrics.RecordRebuild(string(trigger), string(code), time.Since(start))
	logger.Warn("Tree rebuild failed", "trigger", trigger, "code", code, "error", err)
	return err
}

func (s *TreeCacheService) isFresh(snap *contracts.TreeSnapshot) bool {
	return s.now().Sub(snap.BuiltAt) < s.ttl
}

// Status 当前缓存状态
func (s *TreeCacheService) Status() contracts.CacheStatus {
	status := contracts.CacheStatus{
		State:      contracts.CacheStateEmpty,
		TTLMs:      s.ttl.Milliseconds(),
		Rebuilding: s.rebuilding.Load(),
	}

	if snap := s.snapshot.Load(); snap != nil {
		builtAt := snap.BuiltAt
		status.BuiltAt = &builtAt
		status.AgeMs = s.now().Sub(snap.BuiltAt).Milliseconds()
		status.Stats = snap.Stats
		if s.isFresh(snap) {
			status.State = contracts.CacheStateFresh
		} else {
			status.State = contracts.CacheStateStale
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr != nil {
		errAt := s.lastErrTime
		status.LastError = s.lastErr.Error()
		status.LastErrorCode = string(apperrors.CodeOf(s.lastErr))
		status.LastErrorAt = &errAt
	}

	return status
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/easayliu/url-tree/internal/application/contracts"
	apperrors "github.com/easayliu/url-tree/internal/shared/errors"
	"github.com/easayliu/url-tree/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SchedulerService 按TTL周期在后台刷新目录树
// 上一次刷新未结束时跳过本轮
type SchedulerService struct {
	cron        *cron.Cron
	treeService contracts.TreeService
	notifier    contracts.RefreshNotifier
	interval    time.Duration
	entryID     cron.EntryID
	mu          sync.RWMutex
	running     bool

	failMu   sync.Mutex
	failures int
}

// cronLogger 将cron内部日志转到应用日志
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

// NewSchedulerService notifier可为nil
func NewSchedulerService(treeService contracts.TreeService, notifier contracts.RefreshNotifier, interval time.Duration) *SchedulerService {
	l := cronLogger{}
	return &SchedulerService{
		cron: cron.New(
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		treeService: treeService,
		notifier:    notifier,
		interval:    interval,
		running:     false,
	}
}

// Start 启动调度器
func (s *SchedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	if s.interval <= 0 {
		return fmt.Errorf("invalid refresh interval: %s", s.interval)
	}

	period, rounded := refreshPeriod(s.interval)
	if rounded {
		logger.Warn("Refresh interval rounded to whole seconds", "interval", s.interval, "period", period)
	}
	s.entryID = s.cron.Schedule(cron.Every(period), cron.FuncJob(s.runRefresh))
	s.cron.Start()
	s.running = true
	logger.Info("Scheduler service started", "interval", s.interval)

	return nil
}

// Stop 停止调度器并等待正在执行的刷新结束,ctx结束时提前返回
func (s *SchedulerService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	stopCtx := s.cron.Stop()
	s.cron.Remove(s.entryID)
	s.running = false
	s.mu.Unlock()

	select {
	case <-stopCtx.Done():
		logger.Info("Scheduler service stopped")
		return nil
	case <-ctx.Done():
		logger.Warn("Scheduler stop timed out waiting for running refresh")
		return ctx.Err()
	}
}

// IsRunning 调度器是否在运行
func (s *SchedulerService) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// NextRun 下一次刷新时间,未运行时返回零值
func (s *SchedulerService) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// ConsecutiveFailures 当前连续失败次数
func (s *SchedulerService) ConsecutiveFailures() int {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failures
}

// refreshPeriod 返回cron.Every实际使用的周期:向下取整到秒,最小1秒
func refreshPeriod(interval time.Duration) (time.Duration, bool) {
	period := interval.Truncate(time.Second)
	if period < time.Second {
		period = time.Second
	}
	return period, period != interval
}

func (s *SchedulerService) runRefresh() {
	snap, err := s.treeService.Refresh(context.Background(), contracts.TriggerSchedule)

	s.failMu.Lock()
	if err != nil {
		s.failures++
		failures := s.failures
		s.failMu.Unlock()

		logger.Warn("Background refresh failed",
			"code", apperrors.CodeOf(err),
			"consecutive_failures", failures,
			"error", err)
		if s.notifier != nil {
			s.notifier.NotifyRefreshFailed(err, failures)
		}
		return
	}

	previous := s.failures
	s.failures = 0
	s.failMu.Unlock()

	if previous > 0 {
		logger.Info("Background refresh recovered", "previous_failures", previous)
		if s.notifier != nil {
			s.notifier.NotifyRefreshRecovered(snap, previous)
		}
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/easayliu/url-tree/internal/application/contracts"
	"github.com/easayliu/url-tree/internal/infrastructure/config"
	"github.com/easayliu/url-tree/internal/infrastructure/source"
	"github.com/easayliu/url-tree/pkg/logger"
)

// ServiceContainer 应用服务容器 - 实现依赖注入
type ServiceContainer struct {
	config *config.Config

	treeService         *TreeCacheService
	notificationService *NotificationService
	schedulerService    *SchedulerService
}

// NewServiceContainer 创建服务容器
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	return NewServiceContainerWithFetcher(cfg, source.NewClient(cfg.Source)), nil
}

// NewServiceContainerWithFetcher 使用指定的数据源创建容器
func NewServiceContainerWithFetcher(cfg *config.Config, fetcher contracts.ItemFetcher) *ServiceContainer {
	container := &ServiceContainer{
		config: cfg,
	}

	// 注意依赖顺序: 缓存 -> 通知 -> 调度
	container.treeService = NewTreeCacheService(fetcher, cfg.Cache.TTL())
	container.notificationService = NewNotificationService(cfg)
	container.schedulerService = NewSchedulerService(container.treeService, container.notificationService, cfg.Cache.TTL())

	return container
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetTreeService 获取目录树缓存服务
func (c *ServiceContainer) GetTreeService() contracts.TreeService {
	return c.treeService
}

// GetSchedulerService 获取后台刷新调度服务
func (c *ServiceContainer) GetSchedulerService() *SchedulerService {
	return c.schedulerService
}

// Start 预热缓存并启动后台刷新
// 预热失败只记录日志,首个请求会再次尝试构建
func (c *ServiceContainer) Start(ctx context.Context) error {
	if c.config.Cache.WarmOnStart {
		if snap, err := c.treeService.Refresh(ctx, contracts.TriggerWarmup); err != nil {
			logger.Warn("Cache warm-up failed", "error", err)
		} else {
			logger.Info("Cache warmed up", "hosts", snap.Stats.Hosts, "entries", snap.Stats.Entries())
		}
	}

	if c.config.Cache.BackgroundRefresh {
		if err := c.schedulerService.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}
	return nil
}

// Stop 停止后台任务
func (c *ServiceContainer) Stop(ctx context.Context) error {
	return c.schedulerService.Stop(ctx)
}

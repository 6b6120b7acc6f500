package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/easayliu/url-tree/internal/application/contracts"
	"github.com/easayliu/url-tree/internal/infrastructure/config"
	"github.com/easayliu/url-tree/internal/infrastructure/telegram"
	apperrors "github.com/easayliu/url-tree/internal/shared/errors"
	"github.com/easayliu/url-tree/pkg/logger"
)

var _ contracts.RefreshNotifier = (*NotificationService)(nil)

// MessageSender 通知发送渠道
type MessageSender interface {
	SendNotification(msg *telegram.NotificationMessage) error
}

// NotificationService 后台刷新告警
// 连续失败达到阈值时告警一次,恢复后再发送一次恢复通知
type NotificationService struct {
	sender    MessageSender
	source    string
	threshold int

	mu      sync.Mutex
	alerted bool
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	var sender MessageSender
	if cfg.Telegram.Enabled {
		sender = telegram.NewClient(&cfg.Telegram)
	}
	return NewNotificationServiceWithSender(sender, logger.SanitizeURL(cfg.Source.URL), cfg.Telegram.FailureThreshold)
}

// NewNotificationServiceWithSender sender为nil时所有通知都被忽略
func NewNotificationServiceWithSender(sender MessageSender, source string, threshold int) *NotificationService {
	if threshold < 1 {
		threshold = 1
	}
	return &NotificationService{
		sender:    sender,
		source:    source,
		threshold: threshold,
	}
}

func (s *NotificationService) NotifyRefreshFailed(err error, consecutiveFailures int) {
	if s.sender == nil || consecutiveFailures < s.threshold {
		return
	}

	s.mu.Lock()
	if s.alerted {
		s.mu.Unlock()
		return
	}
	s.alerted = true
	s.mu.Unlock()

	msg := &telegram.NotificationMessage{
		Type:      telegram.TypeRefreshFailed,
		Title:     s.source,
		Content:   fmt.Sprintf("%s (连续失败 %d 次)", err.Error(), consecutiveFailures),
		Timestamp: time.Now(),
		Extra: map[string]interface{}{
			"code":     string(apperrors.CodeOf(err)),
			"failures": consecutiveFailures,
		},
	}

	if err := s.sender.SendNotification(msg); err != nil {
		logger.Error("Failed to send refresh failed notification", "error", err)
	}
}

func (s *NotificationService) NotifyRefreshRecovered(snapshot *contracts.TreeSnapshot, previousFailures int) {
	if s.sender == nil {
		return
	}

	s.mu.Lock()
	if !s.alerted {
		s.mu.Unlock()
		return
	}
	s.alerted = false
	s.mu.Unlock()

	content := fmt.Sprintf("连续失败: %d 次", previousFailures)
	if snapshot != nil {
		content += fmt.Sprintf("\n主机数: %d\n条目数: %d", snapshot.Stats.Hosts, snapshot.Stats.Entries())
	}

	msg := &telegram.NotificationMessage{
		Type:      telegram.TypeRefreshRecovered,
		Title:     s.source,
		Content:   content,
		Timestamp: time.Now(),
		Extra: map[string]interface{}{
			"failures": previousFailures,
		},
	}

	if err := s.sender.SendNotification(msg); err != nil {
		logger.Error("Failed to send refresh recovered notification", "error", err)
	}
}

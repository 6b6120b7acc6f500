package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/easayliu/url-tree/internal/application/contracts"
	"github.com/easayliu/url-tree/internal/domain/models/tree"
	"github.com/easayliu/url-tree/internal/infrastructure/telegram"
	apperrors "github.com/easayliu/url-tree/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []*telegram.NotificationMessage
	err      error
}

func (r *recordingSender) SendNotification(msg *telegram.NotificationMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return r.err
}

func (r *recordingSender) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.messages))
	for _, m := range r.messages {
		types = append(types, m.Type)
	}
	return types
}

func TestNotificationService_AlertsOnceAtThreshold(t *testing.T) {
	sender := &recordingSender{}
	svc := NewNotificationServiceWithSender(sender, "https://src", 3)
	err := apperrors.NewServiceError(apperrors.ErrorCodeUpstreamTimeout, "upstream timed out")

	svc.NotifyRefreshFailed(err, 1)
	svc.NotifyRefreshFailed(err, 2)
	assert.Empty(t, sender.Types())

	svc.NotifyRefreshFailed(err, 3)
	svc.NotifyRefreshFailed(err, 4)
	require.Equal(t, []string{telegram.TypeRefreshFailed}, sender.Types())

	msg := sender.messages[0]
	assert.Equal(t, "https://src", msg.Title)
	assert.Contains(t, msg.Content, "UPSTREAM_TIMEOUT")
	assert.Equal(t, "UPSTREAM_TIMEOUT", msg.Extra["code"])
}

func TestNotificationService_RecoveryOnlyAfterAlert(t *testing.T) {
	sender := &recordingSender{}
	svc := NewNotificationServiceWithSender(sender, "https://src", 2)
	snap := &contracts.TreeSnapshot{Stats: tree.Stats{Hosts: 1, Files: 2}}

	svc.NotifyRefreshFailed(errors.New("boom"), 1)
	svc.NotifyRefreshRecovered(snap, 1)
	assert.Empty(t, sender.Types())

	svc.NotifyRefreshFailed(errors.New("boom"), 1)
	svc.NotifyRefreshFailed(errors.New("boom"), 2)
	svc.NotifyRefreshRecovered(snap, 2)
	svc.NotifyRefreshRecovered(snap, 0)
	assert.Equal(t, []string{telegram.TypeRefreshFailed, telegram.TypeRefreshRecovered}, sender.Types())
	assert.Contains(t, sender.messages[1].Content, "条目数: 2")

	// 恢复后可以再次告警
	svc.NotifyRefreshFailed(errors.New("boom"), 2)
	assert.Len(t, sender.Types(), 3)
}

func TestNotificationService_NilSender(t *testing.T) {
	svc := NewNotificationServiceWithSender(nil, "https://src", 0)
	assert.Equal(t, 1, svc.threshold)
	assert.NotPanics(t, func() {
		svc.NotifyRefreshFailed(errors.New("boom"), 5)
		svc.NotifyRefreshRecovered(nil, 5)
	})
}

func TestNotificationService_SendErrorIsLogged(t *testing.T) {
	sender := &recordingSender{err: errors.New("network down")}
	svc := NewNotificationServiceWithSender(sender, "https://src", 1)

	svc.NotifyRefreshFailed(errors.New("boom"), 1)
	assert.Len(t, sender.Types(), 1)
	assert.True(t, svc.alerted)
}

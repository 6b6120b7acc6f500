package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/easayliu/url-tree/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNotification(t *testing.T) {
	ts := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		msg      *NotificationMessage
		contains []string
	}{
		{
			name: "刷新失败",
			msg: &NotificationMessage{
				Type:      TypeRefreshFailed,
				Title:     "https://src.example.com/items",
				Content:   "UPSTREAM_TIMEOUT: upstream timed out",
				Timestamp: ts,
			},
			contains: []string{"目录树刷新失败", "`https://src.example.com/items`", "2024-05-01 08:30:00", "UPSTREAM_TIMEOUT"},
		},
		{
			name: "刷新恢复",
			msg: &NotificationMessage{
				Type:      TypeRefreshRecovered,
				Title:     "https://src.example.com/items",
				Content:   "连续失败: 3 次",
				Timestamp: ts,
			},
			contains: []string{"目录树刷新已恢复", "连续失败: 3 次"},
		},
		{
			name: "其他类型",
			msg: &NotificationMessage{
				Type:      "custom",
				Title:     "标题",
				Content:   "内容",
				Timestamp: ts,
			},
			contains: []string{"*标题*", "内容"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := formatNotification(tt.msg)
			for _, want := range tt.contains {
				assert.Contains(t, text, want)
			}
		})
	}
}

func TestFormatNotification_BackticksInCodeSpan(t *testing.T) {
	msg := &NotificationMessage{
		Type:      TypeRefreshFailed,
		Title:     "https://src/`items`",
		Content:   "UPSTREAM_ERROR: field `items` not found",
		Timestamp: time.Now(),
	}

	text := formatNotification(msg)
	assert.Contains(t, text, "field 'items' not found")
	assert.Contains(t, text, "`https://src/'items'`")
	// 每个代码块一对反引号: 数据源和错误信息
	assert.Equal(t, 4, strings.Count(text, "`"))
}

func TestSendNotification_Disabled(t *testing.T) {
	client := &Client{config: &config.TelegramConfig{Enabled: false, ChatIDs: []int64{1}}}
	require.NoError(t, client.SendNotification(&NotificationMessage{Type: TypeRefreshFailed}))

	client = &Client{config: &config.TelegramConfig{Enabled: true}}
	require.NoError(t, client.SendNotification(&NotificationMessage{Type: TypeRefreshFailed}))
}

func TestSendNotification_BotNotInitialized(t *testing.T) {
	client := &Client{config: &config.TelegramConfig{Enabled: true, ChatIDs: []int64{1, 2}}}
	err := client.SendNotification(&NotificationMessage{Type: TypeRefreshFailed, Timestamp: time.Now()})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not initialized"))
}

func TestCleanUTF8(t *testing.T) {
	assert.Equal(t, "ok", cleanUTF8("ok"))
	assert.Equal(t, "a?b", cleanUTF8("a\xffb"))
}

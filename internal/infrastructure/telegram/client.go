package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/easayliu/url-tree/internal/infrastructure/config"
	"github.com/easayliu/url-tree/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Client struct {
	config *config.TelegramConfig
	bot    *tgbotapi.BotAPI
}

func NewClient(cfg *config.TelegramConfig) *Client {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("Failed to create Telegram bot", "error", err)
		return &Client{
			config: cfg,
			bot:    nil,
		}
	}

	logger.Info("Telegram bot connected successfully", "username", bot.Self.UserName)

	return &Client{
		config: cfg,
		bot:    bot,
	}
}

func (c *Client) SendMessageWithParseMode(chatID int64, text, parseMode string) error {
	if c.bot == nil {
		return fmt.Errorf("telegram bot not initialized")
	}

	msg := tgbotapi.NewMessage(chatID, cleanUTF8(text))
	if parseMode != "" {
		msg.ParseMode = parseMode
	}

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// cleanUTF8 确保文本是有效的UTF-8编码
func cleanUTF8(text string) string {
	if !utf8.ValidString(text) {
		return strings.ToValidUTF8(text, "?")
	}
	return text
}

// SendNotification 向所有配置的chat发送通知,单个chat失败不影响其他chat
// 全部失败时返回最后一个错误
func (c *Client) SendNotification(msg *NotificationMessage) error {
	if !c.config.Enabled || len(c.config.ChatIDs) == 0 {
		logger.Info("Telegram disabled or no chat IDs configured")
		return nil
	}

	text := formatNotification(msg)

	var lastErr error
	sent := 0
	for _, chatID := range c.config.ChatIDs {
		if err := c.SendMessageWithParseMode(chatID, text, tgbotapi.ModeMarkdown); err != nil {
			logger.Error("Failed to send notification", "chatID", chatID, "error", err)
			lastErr = err
			continue
		}
		sent++
		logger.Info("Notification sent", "chatID", chatID, "type", msg.Type)
	}

	if sent == 0 {
		return lastErr
	}
	return nil
}

// inCode Markdown代码块内无法转义反引号,替换为单引号
func inCode(text string) string {
	return strings.ReplaceAll(text, "`", "'")
}

func formatNotification(msg *NotificationMessage) string {
	ts := msg.Timestamp.Format("2006-01-02 15:04:05")

	switch msg.Type {
	case TypeRefreshFailed:
		return fmt.Sprintf("❌ *目录树刷新失败*\n\n🌐 数据源: `%s`\n⏰ 失败时间: %s\n🚨 错误信息: `%s`",
			inCode(msg.Title), ts, inCode(msg.Content))

	case TypeRefreshRecovered:
		return fmt.Sprintf("✅ *目录树刷新已恢复*\n\n🌐 数据源: `%s`\n⏰ 恢复时间: %s\n%s",
			inCode(msg.Title), ts, msg.Content)

	default:
		return fmt.Sprintf("*%s*\n\n%s\n\n⏰ %s", msg.Title, msg.Content, ts)
	}
}

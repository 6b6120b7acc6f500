package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/easayliu/url-tree/internal/domain/entities"
	"github.com/easayliu/url-tree/internal/infrastructure/config"
	"github.com/easayliu/url-tree/internal/infrastructure/ratelimit"
	apperrors "github.com/easayliu/url-tree/internal/shared/errors"
	"github.com/easayliu/url-tree/pkg/httpclient"
	"github.com/easayliu/url-tree/pkg/logger"
)

// Client 上游URL列表数据源客户端
type Client struct {
	URL         string
	Token       string
	ItemsField  string
	httpClient  *http.Client
	rateLimiter *ratelimit.RateLimiter
}

// NewClient 创建数据源客户端
func NewClient(cfg config.SourceConfig) *Client {
	return &Client{
		URL:        cfg.URL,
		Token:      cfg.Token,
		ItemsField: cfg.ItemsField,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		rateLimiter: ratelimit.NewRateLimiter(cfg.QPS),
	}
}

// FetchItems 拉取当前完整的URL列表
// 失败时返回的ServiceError已按上游超时、网关错误、无响应和其他错误分类
func (c *Client) FetchItems(ctx context.Context) ([]entities.Item, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeUpstreamOther, "rate limit wait aborted", err)
		}
	}

	opts := httpclient.DefaultOptions().
		WithContext(ctx).
		WithClient(c.httpClient)
	if c.Token != "" {
		opts = opts.WithHeader("Authorization", "Bearer "+c.Token)
	}

	start := time.Now()
	var raw json.RawMessage
	if err := httpclient.GetJSON(c.URL, &raw, opts); err != nil {
		classified := Classify(err)
		logger.Warn("Failed to fetch source items",
			"url", logger.SanitizeURL(c.URL),
			"code", apperrors.CodeOf(classified),
			"duration", time.Since(start),
			"error", err)
		return nil, classified
	}

	items, err := decodeItems(raw, c.ItemsField)
	if err != nil {
		return nil, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeUpstreamOther, "unexpected source payload", err)
	}

	logger.Debug("Fetched source items",
		"url", logger.SanitizeURL(c.URL),
		"count", len(items),
		"duration", time.Since(start))
	return items, nil
}

// decodeItems 响应可以是数组本身,也可以是对象中的某个字段
func decodeItems(raw json.RawMessage, field string) ([]entities.Item, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []entities.Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	if field == "" {
		return nil, fmt.Errorf("expected a JSON array of items")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	list, ok := envelope[field]
	if !ok {
		return nil, fmt.Errorf("field %q not found in response", field)
	}
	var items []entities.Item
	if err := json.Unmarshal(list, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Classify 将拉取失败归类为业务错误码
//   - 上游返回504 -> UPSTREAM_TIMEOUT
//   - 上游返回502 -> UPSTREAM_BAD_GATEWAY
//   - 请求已发出但没有收到响应 -> UPSTREAM_UNREACHABLE
//   - 其他 -> UPSTREAM_ERROR
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsServiceError(err); ok {
		return err
	}

	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusGatewayTimeout:
			return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeUpstreamTimeout, "upstream timed out", err).
				WithDetail("status", statusErr.StatusCode)
		case http.StatusBadGateway:
			return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeUpstreamBadGateway, "upstream bad gateway", err).
				WithDetail("status", statusErr.StatusCode)
		default:
			return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeUpstreamOther, "upstream request failed", err).
				WithDetail("status", statusErr.StatusCode)
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeUpstreamUnreachable, "no response from upstream", err)
	}

	return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeUpstreamOther, "upstream request failed", err)
}

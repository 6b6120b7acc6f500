package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easayliu/url-tree/internal/domain/entities"
	"github.com/easayliu/url-tree/internal/infrastructure/config"
	apperrors "github.com/easayliu/url-tree/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, mutate func(c *config.SourceConfig)) *Client {
	cfg := config.SourceConfig{URL: url, TimeoutMs: 2000}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestClient_FetchItems(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		mutate func(c *config.SourceConfig)
		want   []entities.Item
	}{
		{
			name: "数组响应",
			body: `[{"fileUrl":"https://h/a"},{"fileUrl":"https://h/b/"}]`,
			want: entities.NewItems("https://h/a", "https://h/b/"),
		},
		{
			name:   "对象字段响应",
			body:   `{"total":1,"items":[{"fileUrl":"https://h/a"}]}`,
			mutate: func(c *config.SourceConfig) { c.ItemsField = "items" },
			want:   entities.NewItems("https://h/a"),
		},
		{
			name:   "配置了字段但响应为数组",
			body:   ` [{"fileUrl":"https://h/a"}]`,
			mutate: func(c *config.SourceConfig) { c.ItemsField = "items" },
			want:   entities.NewItems("https://h/a"),
		},
		{
			name: "空列表",
			body: `[]`,
			want: []entities.Item{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			items, err := newTestClient(server.URL, tt.mutate).FetchItems(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, items)
		})
	}
}

func TestClient_FetchItems_BearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, func(c *config.SourceConfig) { c.Token = "secret-token" })
	_, err := client.FetchItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClient_FetchItems_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		mutate func(c *config.SourceConfig)
		want   apperrors.ErrorCode
	}{
		{"上游超时", http.StatusGatewayTimeout, "", nil, apperrors.ErrorCodeUpstreamTimeout},
		{"网关错误", http.StatusBadGateway, "", nil, apperrors.ErrorCodeUpstreamBadGateway},
		{"服务端错误", http.StatusInternalServerError, "", nil, apperrors.ErrorCodeUpstreamOther},
		{"无效JSON", http.StatusOK, "<html>", nil, apperrors.ErrorCodeUpstreamOther},
		{"对象缺少字段", http.StatusOK, `{"data":[]}`, func(c *config.SourceConfig) { c.ItemsField = "items" }, apperrors.ErrorCodeUpstreamOther},
		{"未配置字段的对象", http.StatusOK, `{"items":[]}`, nil, apperrors.ErrorCodeUpstreamOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			items, err := newTestClient(server.URL, tt.mutate).FetchItems(context.Background())
			require.Error(t, err)
			assert.Nil(t, items)
			assert.Equal(t, tt.want, apperrors.CodeOf(err))
		})
	}
}

func TestClient_FetchItems_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	_, err := newTestClient(addr, nil).FetchItems(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCodeUpstreamUnreachable, apperrors.CodeOf(err))
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))

	existing := apperrors.NewServiceError(apperrors.ErrorCodeUpstreamTimeout, "already classified")
	assert.Same(t, existing, Classify(existing))

	assert.Equal(t, apperrors.ErrorCodeUpstreamOther, apperrors.CodeOf(Classify(errors.New("boom"))))
}

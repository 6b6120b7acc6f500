package urlpath

import (
	"testing"

	apperrors "github.com/easayliu/url-tree/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  []string
		isDir bool
	}{
		{"文件", "https://h/a/b", []string{"h", "a", "b"}, false},
		{"目录", "https://h/a/b/", []string{"h", "a", "b"}, true},
		{"仅主机", "https://h", []string{"h"}, false},
		{"主机根目录", "https://h/", []string{"h"}, true},
		{"百分号解码", "https://h/a%20b/c", []string{"h", "a b", "c"}, false},
		{"未编码的空格", "https://h/a b/c", []string{"h", "a b", "c"}, false},
		{"合并空段", "https://h//a///b", []string{"h", "a", "b"}, false},
		{"编码的斜杠不拆分", "https://h/a%2Fb/c", []string{"h", "a/b", "c"}, false},
		{"孤立的百分号", "https://h/100%/x", []string{"h", "100%", "x"}, false},
		{"UTF-8已编码", "https://h/caf%C3%A9", []string{"h", "café"}, false},
		{"UTF-8未编码", "https://h/café", []string{"h", "café"}, false},
		{"忽略查询串", "https://h/a/b?x=1", []string{"h", "a", "b"}, false},
		{"保留端口", "http://h:8080/a", []string{"h:8080", "a"}, false},
		{"主机名小写", "https://EX.com/Docs", []string{"ex.com", "Docs"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompose(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Segments)
			assert.Equal(t, tt.isDir, got.IsDirectory)
			assert.Equal(t, tt.want[0], got.Host())
			assert.Equal(t, tt.want[1:], got.Path())
		})
	}
}

func TestDecompose_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"空字符串", ""},
		{"非URL", "not a url"},
		{"相对路径", "/relative/path"},
		{"缺少主机", "mailto:someone@example.com"},
		{"非法主机", "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompose(tt.raw)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrorCodeMalformedURL))

			serviceErr, ok := apperrors.AsServiceError(err)
			require.True(t, ok)
			assert.Equal(t, tt.raw, serviceErr.Details["url"])
		})
	}
}

func TestDecompose_DirectoryFlagUsesRawURL(t *testing.T) {
	// 解码后才出现的斜杠不影响目录判定
	got, err := Decompose("https://h/a%2F")
	require.NoError(t, err)
	assert.False(t, got.IsDirectory)
	assert.Equal(t, []string{"h", "a/"}, got.Segments)
}

func TestEscape_Idempotent(t *testing.T) {
	inputs := []string{
		"https://h/a b/c",
		"https://h/a%20b/c",
		"https://h/100%/x",
		"https://h/café/<x>",
		"https://h/a|b^c",
	}

	for _, in := range inputs {
		once := Escape(in)
		assert.Equal(t, once, Escape(once), "input %q", in)
	}
	assert.Equal(t, "https://h/a%20b/c", Escape("https://h/a b/c"))
	assert.Equal(t, "https://h/caf%C3%A9", Escape("https://h/café"))
}

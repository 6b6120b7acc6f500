package treebuilder

import (
	"encoding/json"
	"testing"

	"github.com/easayliu/url-tree/internal/domain/entities"
	"github.com/easayliu/url-tree/internal/domain/models/tree"
	apperrors "github.com/easayliu/url-tree/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildJSON(t *testing.T, urls ...string) string {
	t.Helper()
	tr, err := FromItems(entities.NewItems(urls...))
	require.NoError(t, err)
	raw, err := json.Marshal(tr)
	require.NoError(t, err)
	return string(raw)
}

func TestFromItems(t *testing.T) {
	tests := []struct {
		name string
		urls []string
		want string
	}{
		{
			name: "端到端示例",
			urls: []string{
				"https://ex.com/docs/readme.txt",
				"https://ex.com/docs/",
				"https://ex.com/img.png",
			},
			want: `{"ex.com":[{"docs":["readme.txt"]},"img.png"]}`,
		},
		{
			name: "文件",
			urls: []string{"https://h/a/b"},
			want: `{"h":[{"a":["b"]}]}`,
		},
		{
			name: "空目录",
			urls: []string{"https://h/a/b/"},
			want: `{"h":[{"a":[{"b":[]}]}]}`,
		},
		{
			name: "解码路径段",
			urls: []string{"https://h/a%20b/c"},
			want: `{"h":[{"a b":["c"]}]}`,
		},
		{
			name: "多主机并列",
			urls: []string{"https://h1/x", "https://h2/y", "https://h1/z"},
			want: `{"h1":["x","z"],"h2":["y"]}`,
		},
		{
			name: "仅主机",
			urls: []string{"https://h", "https://h/"},
			want: `{"h":[]}`,
		},
		{
			name: "保持首次出现顺序",
			urls: []string{"https://h/b/1", "https://h/a", "https://h/b/2", "https://h/c/"},
			want: `{"h":[{"b":["1","2"]},"a",{"c":[]}]}`,
		},
		{
			name: "先目录后内容",
			urls: []string{"https://h/d/", "https://h/d/e/f"},
			want: `{"h":[{"d":[{"e":["f"]}]}]}`,
		},
		{
			name: "同名文件与目录共存",
			urls: []string{"https://h/foo", "https://h/foo/", "https://h/foo/bar"},
			want: `{"h":["foo",{"foo":["bar"]}]}`,
		},
		{
			name: "空输入",
			urls: nil,
			want: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildJSON(t, tt.urls...))
		})
	}
}

func TestFromItems_Idempotent(t *testing.T) {
	unique := []string{
		"https://h/a/b.txt",
		"https://h/a/",
		"https://h/c",
	}
	withDuplicates := []string{
		"https://h/a/b.txt",
		"https://h/a/",
		"https://h/a/b.txt",
		"https://h/c",
		"https://h/a/",
		"https://h/c",
	}

	assert.Equal(t, buildJSON(t, unique...), buildJSON(t, withDuplicates...))
}

func TestFromItems_MalformedAbortsBatch(t *testing.T) {
	items := entities.NewItems("https://h/a", "::not a url", "https://h/b")

	got, err := FromItems(items)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.Is(err, apperrors.ErrorCodeMalformedURL))
}

func TestBuild_SharesDirectoryAcrossItems(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddURL("https://h/a/1"))
	require.NoError(t, b.AddURL("https://h/a/2"))

	host, ok := b.Tree().Host("h")
	require.True(t, ok)
	a, ok := host.Subdirectory("a")
	require.True(t, ok)
	assert.Equal(t, []tree.Entry{tree.FileEntry("1"), tree.FileEntry("2")}, a.Entries)
	assert.Equal(t, tree.Stats{Hosts: 1, Directories: 1, Files: 2}, b.Tree().Stats())
}

package treebuilder

import (
	"github.com/easayliu/url-tree/internal/domain/entities"
	"github.com/easayliu/url-tree/internal/domain/models/tree"
	"github.com/easayliu/url-tree/internal/domain/services/urlpath"
)

// Builder 将分解后的路径逐条折叠进同一棵目录树
// 每一层按名称去重,并保持首次出现的顺序
type Builder struct {
	tree *tree.Tree
}

// NewBuilder 创建构建器
func NewBuilder() *Builder {
	return &Builder{tree: tree.New()}
}

// Add 折叠一条路径
func (b *Builder) Add(path urlpath.PathSegments) {
	parent := b.tree.EnsureHost(path.Host())

	segments := path.Path()
	last := len(segments) - 1
	for i, name := range segments {
		switch {
		case i < last:
			parent = parent.EnsureSubdirectory(name)
		case path.IsDirectory:
			// 末尾的目录只需存在,无需下探
			parent.EnsureSubdirectory(name)
		default:
			parent.AddFile(name)
		}
	}
}

// AddURL 分解并折叠一条URL
func (b *Builder) AddURL(rawURL string) error {
	path, err := urlpath.Decompose(rawURL)
	if err != nil {
		return err
	}
	b.Add(path)
	return nil
}

// Tree 返回构建结果
func (b *Builder) Tree() *tree.Tree {
	return b.tree
}

// FromItems 由上游记录构建目录树
// 任意一条URL分解失败都会使整批构建失败,不返回部分结果
func FromItems(items []entities.Item) (*tree.Tree, error) {
	b := NewBuilder()
	for _, item := range items {
		if err := b.AddURL(item.FileURL); err != nil {
			return nil, err
		}
	}
	return b.Tree(), nil
}

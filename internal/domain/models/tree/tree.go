package tree

import (
	"bytes"
	"encoding/json"
)

// Entry 目录中的一个条目,要么是文件名,要么是子目录
type Entry struct {
	File string
	Dir  *Directory
}

// FileEntry 创建文件条目
func FileEntry(name string) Entry {
	return Entry{File: name}
}

// DirEntry 创建子目录条目
func DirEntry(dir *Directory) Entry {
	return Entry{Dir: dir}
}

// IsDir 是否为子目录
func (e Entry) IsDir() bool {
	return e.Dir != nil
}

// Name 条目名称
func (e Entry) Name() string {
	if e.Dir != nil {
		return e.Dir.Name
	}
	return e.File
}

// MarshalJSON 文件输出为字符串,子目录输出为单键对象
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Dir != nil {
		return e.Dir.MarshalJSON()
	}
	return json.Marshal(e.File)
}

// Directory 目录节点,即只有一个键的TreeNode
// Entries 保持首次出现的顺序;索引只用于按名称查找,不影响输出
type Directory struct {
	Name    string
	Entries []Entry

	dirs  map[string]int
	files map[string]struct{}
}

// NewDirectory 创建空目录
func NewDirectory(name string) *Directory {
	return &Directory{
		Name:    name,
		Entries: []Entry{},
		dirs:    make(map[string]int),
		files:   make(map[string]struct{}),
	}
}

func (d *Directory) ensureIndex() {
	if d.dirs != nil && d.files != nil {
		return
	}
	d.dirs = make(map[string]int, len(d.Entries))
	d.files = make(map[string]struct{}, len(d.Entries))
	for i, entry := range d.Entries {
		if entry.IsDir() {
			if _, exists := d.dirs[entry.Dir.Name]; !exists {
				d.dirs[entry.Dir.Name] = i
			}
		} else {
			d.files[entry.File] = struct{}{}
		}
	}
}

// Subdirectory 按名称查找子目录
func (d *Directory) Subdirectory(name string) (*Directory, bool) {
	d.ensureIndex()
	i, ok := d.dirs[name]
	if !ok {
		return nil, false
	}
	return d.Entries[i].Dir, true
}

// HasFile 是否已包含同名文件
func (d *Directory) HasFile(name string) bool {
	d.ensureIndex()
	_, ok := d.files[name]
	return ok
}

// EnsureSubdirectory 返回同名子目录,不存在时在末尾追加一个空目录
func (d *Directory) EnsureSubdirectory(name string) *Directory {
	if sub, ok := d.Subdirectory(name); ok {
		return sub
	}
	sub := NewDirectory(name)
	d.dirs[name] = len(d.Entries)
	d.Entries = append(d.Entries, DirEntry(sub))
	return sub
}

// AddFile 在末尾追加文件,已存在同名文件时不做改动并返回false
// 文件与目录的名称空间相互独立,同名的文件和目录可以共存
func (d *Directory) AddFile(name string) bool {
	if d.HasFile(name) {
		return false
	}
	d.files[name] = struct{}{}
	d.Entries = append(d.Entries, FileEntry(name))
	return true
}

// MarshalJSON 输出 {"name": [entries...]}
func (d *Directory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, d.Name, d.Entries); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Tree 目录树根节点,键为主机名,按首次出现顺序排列
type Tree struct {
	Hosts []*Directory

	index map[string]int
}

// New 创建空树
func New() *Tree {
	return &Tree{
		Hosts: []*Directory{},
		index: make(map[string]int),
	}
}

// Host 按主机名查找
func (t *Tree) Host(name string) (*Directory, bool) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.Hosts[i], true
}

// EnsureHost 返回主机目录,不存在时追加
func (t *Tree) EnsureHost(name string) *Directory {
	if host, ok := t.Host(name); ok {
		return host
	}
	host := NewDirectory(name)
	t.index[name] = len(t.Hosts)
	t.Hosts = append(t.Hosts, host)
	return host
}

func (t *Tree) reindex() {
	t.index = make(map[string]int, len(t.Hosts))
	for i, host := range t.Hosts {
		t.index[host.Name] = i
	}
}

// MarshalJSON 输出 {"host1": [...], "host2": [...]}
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, host := range t.Hosts {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, host.Name, host.Entries); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, name string, entries []Entry) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	buf.Write(key)
	buf.WriteByte(':')
	buf.WriteByte('[')
	for i, entry := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		raw, err := entry.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')
	return nil
}

// Stats 目录树统计
type Stats struct {
	Hosts       int `json:"hosts"`
	Directories int `json:"directories"`
	Files       int `json:"files"`
}

// Entries 条目总数(目录+文件,不含主机)
func (s Stats) Entries() int {
	return s.Directories + s.Files
}

// Stats 统计主机、目录与文件数量
func (t *Tree) Stats() Stats {
	stats := Stats{Hosts: len(t.Hosts)}
	for _, host := range t.Hosts {
		countEntries(host, &stats)
	}
	return stats
}

func countEntries(d *Directory, stats *Stats) {
	for _, entry := range d.Entries {
		if entry.IsDir() {
			stats.Directories++
			countEntries(entry.Dir, stats)
		} else {
			stats.Files++
		}
	}
}

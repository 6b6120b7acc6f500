package urlpath

import (
	"errors"
	"net/url"
	"strings"

	apperrors "github.com/easayliu/url-tree/internal/shared/errors"
)

var errMissingHost = errors.New("url must be absolute with a host")

// PathSegments URL分解结果
// Segments[0] 为主机名,其余为逐段解码后的路径
type PathSegments struct {
	Segments    []string
	IsDirectory bool
}

// Host 主机名
func (p PathSegments) Host() string {
	return p.Segments[0]
}

// Path 主机名之后的路径段
func (p PathSegments) Path() []string {
	return p.Segments[1:]
}

// Decompose 将原始URL分解为 [host, seg1, ..., segN]
// 原始URL以 "/" 结尾时视为目录;空段(如 "//")会被忽略
func Decompose(rawURL string) (PathSegments, error) {
	u, err := url.Parse(Escape(rawURL))
	if err != nil {
		return PathSegments{}, apperrors.NewMalformedURLError(rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return PathSegments{}, apperrors.NewMalformedURLError(rawURL, errMissingHost)
	}

	segments := []string{strings.ToLower(u.Host)}
	for _, part := range strings.Split(u.EscapedPath(), "/") {
		if part == "" {
			continue
		}
		decoded, err := url.PathUnescape(part)
		if err != nil {
			return PathSegments{}, apperrors.NewMalformedURLError(rawURL, err)
		}
		segments = append(segments, decoded)
	}

	return PathSegments{
		Segments:    segments,
		IsDirectory: strings.HasSuffix(rawURL, "/"),
	}, nil
}

// Escape 对URL中的非法字符做百分号编码,对已编码的输入是幂等的
// 保留URL语法字符和合法的 %XX 序列,其余字节一律编码
func Escape(rawURL string) string {
	var b strings.Builder
	b.Grow(len(rawURL))
	for i := 0; i < len(rawURL); i++ {
		c := rawURL[i]
		switch {
		case c == '%':
			if i+2 < len(rawURL) && isHex(rawURL[i+1]) && isHex(rawURL[i+2]) {
				b.WriteByte(c)
			} else {
				b.WriteString("%25")
			}
		case shouldKeep(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0f])
		}
	}
	return b.String()
}

const upperHex = "0123456789ABCDEF"

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func shouldKeep(c byte) bool {
	if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
		return true
	}
	return strings.IndexByte("-._~:/?#[]@!$&'()*+,;=", c) >= 0
}

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Options 日志初始化选项
type Options struct {
	Level     string // debug, info, warn, error
	Output    string // console, file, both
	Format    string // text, json
	FilePath  string
	Colorize  bool // 仅对控制台文本输出生效
	AddSource bool
}

var (
	mu            sync.Mutex
	defaultLogger *slog.Logger
	levelVar      = new(slog.LevelVar)
	logFile       *os.File
)

// Init 初始化全局日志
func Init(opts Options) error {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	var fileWriter io.Writer
	if opts.Output == "file" || opts.Output == "both" {
		if opts.FilePath == "" {
			return fmt.Errorf("log file path is required for output %q", opts.Output)
		}
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		fileWriter = f
	}

	levelVar.Set(level)
	handlerOpts := &slog.HandlerOptions{Level: levelVar, AddSource: opts.AddSource}

	var handler slog.Handler
	switch opts.Output {
	case "file":
		handler = newHandler(fileWriter, opts.Format, handlerOpts)
	case "both":
		handler = newHandler(io.MultiWriter(os.Stdout, fileWriter), opts.Format, handlerOpts)
	default:
		if opts.Colorize && opts.Format != "json" {
			handler = newColorHandler(os.Stdout, handlerOpts)
		} else {
			handler = newHandler(os.Stdout, opts.Format, handlerOpts)
		}
	}

	defaultLogger = slog.New(handler)
	return nil
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// SetLevel 动态调整日志级别
func SetLevel(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(lvl)
	return nil
}

func get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: levelVar}))
	}
	return defaultLogger
}

// With 返回附带固定字段的logger
func With(args ...any) *slog.Logger {
	return get().With(SanitizeArgs(args...)...)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, SanitizeArgs(args...)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, SanitizeArgs(args...)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, SanitizeArgs(args...)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, SanitizeArgs(args...)...)
}

// colorHandler 控制台彩色输出: 时间 级别 消息 key=value...
type colorHandler struct {
	w     io.Writer
	opts  *slog.HandlerOptions
	attrs []slog.Attr
	mu    *sync.Mutex
}

func newColorHandler(w io.Writer, opts *slog.HandlerOptions) *colorHandler {
	return &colorHandler{w: w, opts: opts, mu: &sync.Mutex{}}
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format("2006-01-02 15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(levelColor(r.Level))
	b.WriteString(fmt.Sprintf("%-5s", r.Level.String()))
	b.WriteString("\033[0m ")
	b.WriteString(r.Message)

	writeAttr := func(a slog.Attr) bool {
		b.WriteString(" \033[2m")
		b.WriteString(a.Key)
		b.WriteString("=\033[0m")
		b.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(writeAttr)
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &colorHandler{w: h.w, opts: h.opts, attrs: merged, mu: h.mu}
}

// WithGroup 彩色输出不区分分组
func (h *colorHandler) WithGroup(string) slog.Handler {
	return h
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "\033[31m"
	case level >= slog.LevelWarn:
		return "\033[33m"
	case level >= slog.LevelInfo:
		return "\033[32m"
	default:
		return "\033[36m"
	}
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Source   SourceConfig   `mapstructure:"source"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host              string `mapstructure:"host"`
	Port              string `mapstructure:"port"`
	Mode              string `mapstructure:"mode"`
	ShutdownTimeoutMs int    `mapstructure:"shutdown_timeout_ms"`
	Gzip              bool   `mapstructure:"gzip"`
}

// SourceConfig 上游URL列表数据源
type SourceConfig struct {
	URL        string `mapstructure:"url"`
	Token      string `mapstructure:"token"`
	TimeoutMs  int    `mapstructure:"timeout_ms"`
	QPS        int    `mapstructure:"qps"`         // 每秒请求数限制,0为不限制
	ItemsField string `mapstructure:"items_field"` // 响应为对象时存放列表的字段,为空表示响应本身是数组
}

// CacheConfig 目录树缓存
type CacheConfig struct {
	TTLMs             int  `mapstructure:"ttl_ms"`
	WarmOnStart       bool `mapstructure:"warm_on_start"`
	BackgroundRefresh bool `mapstructure:"background_refresh"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"`
	Format    string `mapstructure:"format"`
	FilePath  string `mapstructure:"file_path"`
	Colorize  bool   `mapstructure:"colorize"`
	AddSource bool   `mapstructure:"add_source"`
}

type TelegramConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	BotToken         string  `mapstructure:"bot_token"`
	ChatIDs          []int64 `mapstructure:"chat_ids"`
	FailureThreshold int     `mapstructure:"failure_threshold"` // 连续失败多少次后告警
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Address 监听地址
func (c ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMs) * time.Millisecond
}

func (c SourceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// TTL 缓存有效期,同时也是后台刷新周期
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMs) * time.Millisecond
}

// 命令行参数名 -> 配置键
var flagKeys = map[string]string{
	"port":       "server.port",
	"source-url": "source.url",
	"cache-ttl":  "cache.ttl_ms",
	"log-level":  "log.level",
}

// RegisterFlags 注册服务启动参数
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to config file (default: ./configs/config.yaml or ./config.yaml)")
	fs.String("port", "8080", "HTTP listen port")
	fs.String("source-url", "", "URL returning the flat list of file URLs")
	fs.Int("cache-ttl", 60000, "tree cache TTL and refresh period in milliseconds")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout_ms", 10000)
	v.SetDefault("server.gzip", true)

	v.SetDefault("source.url", "")
	v.SetDefault("source.token", "")
	v.SetDefault("source.timeout_ms", 30000)
	v.SetDefault("source.qps", 10)
	v.SetDefault("source.items_field", "")

	v.SetDefault("cache.ttl_ms", 60000)
	v.SetDefault("cache.warm_on_start", true)
	v.SetDefault("cache.background_refresh", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file_path", "./logs/url-tree.log")
	v.SetDefault("log.colorize", true)
	v.SetDefault("log.add_source", false)

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_ids", []int64{})
	v.SetDefault("telegram.failure_threshold", 3)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// LoadConfig 加载配置,优先级: 命令行 > 环境变量(URLTREE_*) > 配置文件 > 默认值
// fs 可为nil
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("URLTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate 校验必填项和取值范围
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("source.url is required")
	}
	u, err := url.Parse(c.Source.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("source.url must be an absolute http(s) URL, got %q", c.Source.URL)
	}
	if c.Cache.TTLMs <= 0 {
		return fmt.Errorf("cache.ttl_ms must be positive, got %d", c.Cache.TTLMs)
	}
	// 后台刷新按整秒调度
	if c.Cache.BackgroundRefresh && (c.Cache.TTLMs < 1000 || c.Cache.TTLMs%1000 != 0) {
		return fmt.Errorf("cache.ttl_ms must be a whole number of seconds when background_refresh is enabled, got %d", c.Cache.TTLMs)
	}
	if c.Source.QPS < 0 {
		return fmt.Errorf("source.qps must not be negative, got %d", c.Source.QPS)
	}
	if c.Source.TimeoutMs < 0 {
		return fmt.Errorf("source.timeout_ms must not be negative, got %d", c.Source.TimeoutMs)
	}
	if c.Telegram.Enabled && c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
	}
	return nil
}

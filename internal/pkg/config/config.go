// internal/pkg/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

// Config 汇总了两个服务角色共享的全部配置。
// 加载顺序: 内置默认值 -> CONFIG_FILE 指定的 YAML 文件 -> 环境变量（最高优先级）。
type Config struct {
	Broker    BrokerConfig    `yaml:"broker"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Inventory InventoryConfig `yaml:"inventory"`
	Jaeger    JaegerConfig    `yaml:"jaeger"`
	HTTP      HTTPConfig      `yaml:"http"`
}

// BrokerConfig 描述消息通道（Kafka）的接入方式与连接重试策略。
type BrokerConfig struct {
	// URL 为完整的 broker 地址 (host:port)。为空时回退到 Host/Port 组合。
	URL  string `yaml:"url"`
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// MaxRetries 与 RetryBaseSeconds 共同构成线性退避策略: wait = base * (attempt+1)。
	MaxRetries       int  `yaml:"max_retries"`
	RetryBaseSeconds int  `yaml:"retry_base_seconds"`
	AckOnReceipt     bool `yaml:"ack_on_receipt"`
}

// DatabaseConfig 描述订单库（MySQL）。除 Port 外的字段在未提供 URL 时均为必填。
type DatabaseConfig struct {
	// URL 为完整 DSN。设置后忽略其余字段。
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type RedisConfig struct {
	Addrs string `yaml:"addrs"`
}

type InventoryConfig struct {
	DefaultStock int64 `yaml:"default_stock"`
}

type JaegerConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type HTTPConfig struct {
	OrderPort     int `yaml:"order_port"`
	InventoryPort int `yaml:"inventory_port"`
}

// Load 构建进程配置。YAML 文件可选；环境变量覆盖文件内容。
func Load() (*Config, error) {
	cfg := &Config{
		Broker: BrokerConfig{
			Host:             "localhost",
			Port:             9092,
			MaxRetries:       10,
			RetryBaseSeconds: 2,
			AckOnReceipt:     true,
		},
		Database:  DatabaseConfig{Port: 3306},
		Redis:     RedisConfig{Addrs: "localhost:6379"},
		Inventory: InventoryConfig{DefaultStock: 100},
		Jaeger:    JaegerConfig{Endpoint: "http://localhost:14268/api/traces"},
		HTTP:      HTTPConfig{OrderPort: 8080, InventoryPort: 8081},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Broker.URL = getEnv("BROKER_URL", cfg.Broker.URL)
	cfg.Broker.Host = getEnv("BROKER_HOST", cfg.Broker.Host)
	cfg.Broker.Port = getEnvInt("BROKER_PORT", cfg.Broker.Port)
	cfg.Broker.MaxRetries = getEnvInt("BROKER_MAX_RETRIES", cfg.Broker.MaxRetries)
	cfg.Broker.RetryBaseSeconds = getEnvInt("BROKER_RETRY_BASE", cfg.Broker.RetryBaseSeconds)
	cfg.Broker.AckOnReceipt = getEnvBool("ACK_ON_RECEIPT", cfg.Broker.AckOnReceipt)

	cfg.Database.URL = getEnv("DB_URL", cfg.Database.URL)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvInt("DB_PORT", cfg.Database.Port)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)

	cfg.Redis.Addrs = getEnv("REDIS_ADDRS", cfg.Redis.Addrs)
	cfg.Inventory.DefaultStock = int64(getEnvInt("DEFAULT_STOCK", int(cfg.Inventory.DefaultStock)))
	cfg.Jaeger.Endpoint = getEnv("JAEGER_ENDPOINT", cfg.Jaeger.Endpoint)
	cfg.HTTP.OrderPort = getEnvInt("ORDER_SERVICE_PORT", cfg.HTTP.OrderPort)
	cfg.HTTP.InventoryPort = getEnvInt("INVENTORY_SERVICE_PORT", cfg.HTTP.InventoryPort)

	return cfg, nil
}

// Target 返回 broker 的 host:port 连接目标。
func (b BrokerConfig) Target() string {
	if b.URL != "" {
		return b.URL
	}
	return fmt.Sprintf("%s:%d", b.Host, b.Port)
}

// RetryBase 以 time.Duration 返回退避基数。
func (b BrokerConfig) RetryBase() time.Duration {
	return time.Duration(b.RetryBaseSeconds) * time.Second
}

// DSN 构造 MySQL 连接串。未提供 URL 时所有必填字段缺一不可，缺失即报错，
// 不做任何隐藏默认，保证配置错误在启动时立即暴露。
func (d DatabaseConfig) DSN() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	missing := ""
	switch {
	case d.Host == "":
		missing = "DB_HOST"
	case d.Name == "":
		missing = "DB_NAME"
	case d.User == "":
		missing = "DB_USER"
	case d.Password == "":
		missing = "DB_PASSWORD"
	}
	if missing != "" {
		return "", fmt.Errorf("config: %s is required when DB_URL is not set", missing)
	}
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
	mc.DBName = d.Name
	mc.User = d.User
	mc.Passwd = d.Password
	mc.ParseTime = true
	return mc.FormatDSN(), nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

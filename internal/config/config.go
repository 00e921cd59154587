package config

import (
	"fmt"
	"os"
	"strconv"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN 构建数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config 传感器监控服务配置
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig

	IoT struct {
		// Redis 快照缓存配置
		Cache struct {
			KeyPrefix     string // 快照缓存键前缀，如 "climate-iot:property:"
			NetworkSuffix string // 网络状态后缀，如 ":network"
			AlertSuffix   string // 活跃报警后缀，如 ":alerts"
			TTL           int    // 快照 TTL（秒）
		}

		// 快照发布间隔（秒）
		PublishInterval int

		// 报警 Webhook 通知地址，为空则不启用
		WebhookURL string

		// 启动时注册演示传感器并生成模拟读数
		SeedDemoSensors bool
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "dharma")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.IoT.Cache.KeyPrefix = getEnv("CACHE_PROPERTY_PREFIX", "climate-iot:property:")
	cfg.IoT.Cache.NetworkSuffix = ":network"
	cfg.IoT.Cache.AlertSuffix = ":alerts"
	cfg.IoT.Cache.TTL = getEnvInt("CACHE_TTL_SECONDS", 30)

	cfg.IoT.PublishInterval = getEnvInt("PUBLISH_INTERVAL_SECONDS", 5)
	cfg.IoT.WebhookURL = getEnv("ALERT_WEBHOOK_URL", "")
	cfg.IoT.SeedDemoSensors = getEnv("SEED_DEMO_SENSORS", "false") == "true"

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

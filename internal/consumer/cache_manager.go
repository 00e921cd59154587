package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Srujan0798/Rest-iN-U/internal/config"
	"github.com/Srujan0798/Rest-iN-U/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheManager 网络状态快照缓存管理器
// 将每个物业的网络状态与活跃报警写入 Redis（带 TTL），供上层读侧消费
type CacheManager struct {
	config      *config.Config
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewCacheManager 创建缓存管理器
func NewCacheManager(
	cfg *config.Config,
	redisClient *redis.Client,
	logger *zap.Logger,
) *CacheManager {
	return &CacheManager{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

// networkKey 网络状态缓存键
func (c *CacheManager) networkKey(propertyID string) string {
	return fmt.Sprintf("%s%s%s",
		c.config.IoT.Cache.KeyPrefix,
		propertyID,
		c.config.IoT.Cache.NetworkSuffix,
	)
}

// alertKey 活跃报警缓存键
func (c *CacheManager) alertKey(propertyID string) string {
	return fmt.Sprintf("%s%s%s",
		c.config.IoT.Cache.KeyPrefix,
		propertyID,
		c.config.IoT.Cache.AlertSuffix,
	)
}

// UpdateNetworkCache 写入物业网络状态快照
func (c *CacheManager) UpdateNetworkCache(ctx context.Context, network models.SensorNetwork) error {
	jsonData, err := json.Marshal(network)
	if err != nil {
		return fmt.Errorf("failed to marshal network status: %w", err)
	}

	key := c.networkKey(network.PropertyID)
	err = c.redisClient.Set(
		ctx,
		key,
		jsonData,
		time.Duration(c.config.IoT.Cache.TTL)*time.Second,
	).Err()

	if err != nil {
		return fmt.Errorf("failed to set network cache: %w", err)
	}

	c.logger.Debug("Updated network cache",
		zap.String("property_id", network.PropertyID),
		zap.String("key", key),
		zap.Int("total_sensors", network.TotalSensors),
		zap.String("health", network.NetworkHealth),
	)

	return nil
}

// UpdateAlertCache 写入物业活跃报警快照
func (c *CacheManager) UpdateAlertCache(ctx context.Context, propertyID string, alerts []models.Alert) error {
	jsonData, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to marshal alerts: %w", err)
	}

	key := c.alertKey(propertyID)
	err = c.redisClient.Set(
		ctx,
		key,
		jsonData,
		time.Duration(c.config.IoT.Cache.TTL)*time.Second,
	).Err()

	if err != nil {
		return fmt.Errorf("failed to set alert cache: %w", err)
	}

	c.logger.Debug("Updated alert cache",
		zap.String("property_id", propertyID),
		zap.String("key", key),
		zap.Int("alert_count", len(alerts)),
	)

	return nil
}

// GetNetworkCache 读取物业网络状态快照
func (c *CacheManager) GetNetworkCache(ctx context.Context, propertyID string) (*models.SensorNetwork, error) {
	val, err := c.redisClient.Get(ctx, c.networkKey(propertyID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("network status not found for property: %s", propertyID)
		}
		return nil, fmt.Errorf("failed to get network cache: %w", err)
	}

	var network models.SensorNetwork
	if err := json.Unmarshal([]byte(val), &network); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network status: %w", err)
	}

	return &network, nil
}

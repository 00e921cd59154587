package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/Srujan0798/Rest-iN-U/internal/config"
	"github.com/Srujan0798/Rest-iN-U/internal/consumer"
	"github.com/Srujan0798/Rest-iN-U/internal/engine"
	"github.com/Srujan0798/Rest-iN-U/internal/models"
	"github.com/Srujan0798/Rest-iN-U/internal/notify"
	"github.com/Srujan0798/Rest-iN-U/internal/report"
	"github.com/Srujan0798/Rest-iN-U/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	_ "github.com/lib/pq"
)

// IoTService 传感器监控服务（整合各层）
// 持有按物业划分的引擎注册表：每个物业一个 engine.Manager，首次使用时创建。
// 归档与缓存是引擎语义之外的尽力而为旁路，失败只记日志，不影响摄入契约
type IoTService struct {
	config      *config.Config
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger

	cacheManager *consumer.CacheManager
	readingsRepo *repository.ReadingsRepository
	alertsRepo   *repository.AlertsRepository

	mu       sync.Mutex
	managers map[string]*engine.Manager
}

// NewIoTService 创建服务并建立数据库/Redis 连接
func NewIoTService(cfg *config.Config, logger *zap.Logger) (*IoTService, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &IoTService{
		config:       cfg,
		db:           db,
		redisClient:  redisClient,
		logger:       logger,
		cacheManager: consumer.NewCacheManager(cfg, redisClient, logger),
		readingsRepo: repository.NewReadingsRepository(db, logger),
		alertsRepo:   repository.NewAlertsRepository(db, logger),
		managers:     make(map[string]*engine.Manager),
	}, nil
}

// Manager 返回物业对应的引擎，首次访问时创建并挂接监听器
func (s *IoTService) Manager(propertyID string) *engine.Manager {
	s.mu.Lock()
	defer s.mu.Unlock()

	if manager, ok := s.managers[propertyID]; ok {
		return manager
	}

	manager := engine.NewManager(propertyID)

	if s.alertsRepo != nil {
		manager.RegisterListener(s.alertArchiveListener(propertyID))
	}
	if s.config.IoT.WebhookURL != "" {
		notifier := notify.NewWebhookNotifier(s.config.IoT.WebhookURL, propertyID, s.logger)
		manager.RegisterListener(notifier.Listener())
	}

	s.managers[propertyID] = manager
	s.logger.Info("Created sensor network manager",
		zap.String("property_id", propertyID),
	)

	return manager
}

// alertArchiveListener 报警落库监听器（尽力而为）
func (s *IoTService) alertArchiveListener(propertyID string) engine.AlertListener {
	return func(alert models.Alert) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.alertsRepo.InsertAlert(ctx, propertyID, &alert); err != nil {
			s.logger.Error("Failed to archive alert",
				zap.String("property_id", propertyID),
				zap.String("alert_id", alert.AlertID),
				zap.Error(err),
			)
		}
	}
}

// RegisterSensor 注册传感器
func (s *IoTService) RegisterSensor(propertyID, category, location, room string) (models.Sensor, error) {
	parsed, err := models.ParseCategory(category)
	if err != nil {
		return models.Sensor{}, err
	}
	return s.Manager(propertyID).RegisterSensor(parsed, location, room)
}

// IngestReading 摄入读数并尽力归档
func (s *IoTService) IngestReading(ctx context.Context, propertyID, sensorID string, value float64, timestamp time.Time) (models.SensorReading, error) {
	reading, err := s.Manager(propertyID).Ingest(sensorID, value, timestamp)
	if err != nil {
		return models.SensorReading{}, err
	}

	if s.readingsRepo != nil {
		if err := s.readingsRepo.InsertReading(ctx, propertyID, &reading); err != nil {
			s.logger.Error("Failed to archive reading",
				zap.String("property_id", propertyID),
				zap.String("reading_id", reading.ReadingID),
				zap.Error(err),
			)
		}
	}

	return reading, nil
}

// AcknowledgeAlert 确认报警，归档状态同步更新
func (s *IoTService) AcknowledgeAlert(ctx context.Context, propertyID, alertID string) bool {
	ok := s.Manager(propertyID).Acknowledge(alertID)

	if ok && s.alertsRepo != nil {
		if _, err := s.alertsRepo.AcknowledgeAlert(ctx, propertyID, alertID); err != nil {
			s.logger.Error("Failed to archive alert acknowledgement",
				zap.String("property_id", propertyID),
				zap.String("alert_id", alertID),
				zap.Error(err),
			)
		}
	}

	return ok
}

// ResolveAlert 解除报警，归档状态同步更新
func (s *IoTService) ResolveAlert(ctx context.Context, propertyID, alertID string) bool {
	ok := s.Manager(propertyID).Resolve(alertID)

	if ok && s.alertsRepo != nil {
		if _, err := s.alertsRepo.ResolveAlert(ctx, propertyID, alertID, time.Now()); err != nil {
			s.logger.Error("Failed to archive alert resolution",
				zap.String("property_id", propertyID),
				zap.String("alert_id", alertID),
				zap.Error(err),
			)
		}
	}

	return ok
}

// ExportHistory 导出传感器历史读数为 Excel
func (s *IoTService) ExportHistory(propertyID, sensorID string, hours int) ([]byte, error) {
	manager := s.Manager(propertyID)

	sensor, err := manager.Sensor(sensorID)
	if err != nil {
		return nil, err
	}

	entries, err := manager.History(sensorID, hours)
	if err != nil {
		return nil, err
	}

	return report.GenerateHistoryExport(sensor, entries)
}

// Start 启动快照发布循环，阻塞直到 ctx 取消
func (s *IoTService) Start(ctx context.Context) error {
	s.logger.Info("Starting IoT sensor service",
		zap.Int("publish_interval_seconds", s.config.IoT.PublishInterval),
	)

	ticker := time.NewTicker(time.Duration(s.config.IoT.PublishInterval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.publishSnapshots(ctx)
		}
	}
}

// publishSnapshots 将所有物业的网络状态与活跃报警写入缓存
func (s *IoTService) publishSnapshots(ctx context.Context) {
	if s.cacheManager == nil {
		return
	}

	s.mu.Lock()
	managers := make([]*engine.Manager, 0, len(s.managers))
	for _, manager := range s.managers {
		managers = append(managers, manager)
	}
	s.mu.Unlock()

	for _, manager := range managers {
		network := manager.NetworkStatus()

		if err := s.cacheManager.UpdateNetworkCache(ctx, network); err != nil {
			s.logger.Error("Failed to publish network snapshot",
				zap.String("property_id", manager.PropertyID()),
				zap.Error(err),
			)
		}
		if err := s.cacheManager.UpdateAlertCache(ctx, manager.PropertyID(), network.ActiveAlerts); err != nil {
			s.logger.Error("Failed to publish alert snapshot",
				zap.String("property_id", manager.PropertyID()),
				zap.Error(err),
			)
		}
	}
}

// Stop 关闭连接
func (s *IoTService) Stop() error {
	s.logger.Info("Stopping IoT sensor service")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database",
				zap.Error(err),
			)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis",
				zap.Error(err),
			)
		}
	}

	return nil
}

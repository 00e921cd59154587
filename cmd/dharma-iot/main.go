package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Srujan0798/Rest-iN-U/internal/config"
	"github.com/Srujan0798/Rest-iN-U/internal/models"
	"github.com/Srujan0798/Rest-iN-U/internal/service"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. 初始化日志
	logger, err := initLogger(cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 3. 创建服务
	iotService, err := service.NewIoTService(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create IoT service",
			zap.Error(err),
		)
	}
	defer iotService.Stop()

	// 4. 按需注册演示传感器并生成模拟读数
	if cfg.IoT.SeedDemoSensors {
		if err := seedDemoSensors(iotService, logger); err != nil {
			logger.Fatal("Failed to seed demo sensors",
				zap.Error(err),
			)
		}
	}

	// 5. 创建上下文（支持优雅关闭）
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 6. 启动快照发布循环
	serviceErrChan := make(chan error, 1)
	go func() {
		if err := iotService.Start(ctx); err != nil {
			serviceErrChan <- err
		}
	}()

	// 7. 等待信号（优雅关闭）
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()),
		)
		cancel()
	case err := <-serviceErrChan:
		logger.Fatal("Service error",
			zap.Error(err),
		)
	}

	logger.Info("IoT sensor service stopped")
}

// seedDemoSensors 注册一组演示传感器并回填 24 小时模拟读数
func seedDemoSensors(iotService *service.IoTService, logger *zap.Logger) error {
	propertyID := os.Getenv("DEMO_PROPERTY_ID")
	if propertyID == "" {
		propertyID = "PROP-001"
	}

	categories := []models.SensorCategory{
		models.CategoryTemperature,
		models.CategoryHumidity,
		models.CategoryAirQuality,
		models.CategoryCO2,
	}

	for _, category := range categories {
		sensor, err := iotService.RegisterSensor(propertyID, string(category), "Main Hall", "Living Room")
		if err != nil {
			return err
		}
		logger.Info("Registered demo sensor",
			zap.String("property_id", propertyID),
			zap.String("sensor_id", sensor.SensorID),
			zap.String("category", string(category)),
		)
	}

	if err := iotService.Manager(propertyID).Simulate(24); err != nil {
		return err
	}

	network := iotService.Manager(propertyID).NetworkStatus()
	logger.Info("Demo sensor network seeded",
		zap.String("property_id", propertyID),
		zap.Int("total_sensors", network.TotalSensors),
		zap.Int("daily_readings", network.DailyReadings),
		zap.String("network_health", network.NetworkHealth),
	)

	return nil
}

// initLogger 初始化日志
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Log.Format == "json" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

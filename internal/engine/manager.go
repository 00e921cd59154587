package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Srujan0798/Rest-iN-U/internal/models"
)

// ErrSensorNotFound 传感器不存在（硬错误，调用方需用 errors.Is 判断）
var ErrSensorNotFound = errors.New("sensor not found")

// AlertListener 报警监听回调
type AlertListener func(alert models.Alert)

// Manager 单物业的传感器网络引擎
// 注册表、读数日志、报警全部由同一把互斥锁保护（每物业单写者模型）；
// 监听器在锁外调用，慢监听器不会阻塞其它传感器的摄入
type Manager struct {
	propertyID string

	mu        sync.Mutex
	sensors   map[string]*models.Sensor
	order     []string // 注册顺序的 sensor_id
	readings  []models.SensorReading
	alerts    []*models.Alert
	listeners []AlertListener

	readingCounter int
	alertCounter   int
}

// NewManager 创建物业引擎
func NewManager(propertyID string) *Manager {
	return &Manager{
		propertyID: propertyID,
		sensors:    make(map[string]*models.Sensor),
	}
}

// PropertyID 返回所属物业ID
func (m *Manager) PropertyID() string {
	return m.propertyID
}

// RegisterSensor 注册传感器，使用类别默认阈值
func (m *Manager) RegisterSensor(category models.SensorCategory, location, room string) (models.Sensor, error) {
	return m.RegisterSensorWithThresholds(category, location, room, models.DefaultThresholds(category))
}

// RegisterSensorWithThresholds 注册传感器并覆盖默认阈值
// 阈值必须满足 min ≤ optimal_min ≤ optimal_max ≤ max
func (m *Manager) RegisterSensorWithThresholds(category models.SensorCategory, location, room string, thresholds models.Thresholds) (models.Sensor, error) {
	if _, err := models.ParseCategory(string(category)); err != nil {
		return models.Sensor{}, err
	}
	if err := thresholds.Validate(); err != nil {
		return models.Sensor{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := nowFunc()
	sensor := &models.Sensor{
		SensorID:        fmt.Sprintf("S-%04d", len(m.sensors)+1),
		Category:        category,
		Location:        location,
		Room:            room,
		Status:          models.StatusOnline,
		BatteryLevel:    100,
		LastReading:     0,
		LastReadingTime: now,
		CalibrationDate: now,
		Thresholds:      thresholds,
	}

	m.sensors[sensor.SensorID] = sensor
	m.order = append(m.order, sensor.SensorID)

	return *sensor, nil
}

// Sensor 按ID精确查找，返回值拷贝
func (m *Manager) Sensor(sensorID string) (models.Sensor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sensor, ok := m.sensors[sensorID]
	if !ok {
		return models.Sensor{}, fmt.Errorf("%w: %s", ErrSensorNotFound, sensorID)
	}
	return *sensor, nil
}

// Sensors 按注册顺序返回全部传感器
func (m *Manager) Sensors() []models.Sensor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sensorsLocked()
}

func (m *Manager) sensorsLocked() []models.Sensor {
	out := make([]models.Sensor, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.sensors[id])
	}
	return out
}

// SetSensorStatus 更新传感器运行状态（Online/Offline/Maintenance）
func (m *Manager) SetSensorStatus(sensorID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sensor, ok := m.sensors[sensorID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSensorNotFound, sensorID)
	}
	sensor.Status = status
	return nil
}

// RegisterListener 注册报警监听器，按注册顺序同步调用
func (m *Manager) RegisterListener(listener AlertListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

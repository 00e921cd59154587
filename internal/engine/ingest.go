package engine

import (
	"fmt"
	"time"

	"github.com/Srujan0798/Rest-iN-U/internal/models"
)

// nowFunc 取当前时间，测试中可替换
var nowFunc = time.Now

// IngestNow 摄入一条以当前时间为时间戳的读数
func (m *Manager) IngestNow(sensorID string, value float64) (models.SensorReading, error) {
	return m.Ingest(sensorID, value, nowFunc())
}

// Ingest 摄入一条读数：
// 评估质量与阈值越界、无条件更新传感器最近值、追加到只追加日志、
// 越界时生成报警并在锁外通知监听器。
// 返回的读数始终携带计算出的质量与越界标记
func (m *Manager) Ingest(sensorID string, value float64, timestamp time.Time) (models.SensorReading, error) {
	if timestamp.IsZero() {
		timestamp = nowFunc()
	}

	m.mu.Lock()

	sensor, ok := m.sensors[sensorID]
	if !ok {
		m.mu.Unlock()
		return models.SensorReading{}, fmt.Errorf("%w: %s", ErrSensorNotFound, sensorID)
	}

	quality := assessQuality(value, sensor.Thresholds)
	triggered := value < sensor.Thresholds.Min || value > sensor.Thresholds.Max

	m.readingCounter++
	reading := models.SensorReading{
		ReadingID:      fmt.Sprintf("R-%08d", m.readingCounter),
		SensorID:       sensorID,
		Category:       sensor.Category,
		Value:          value,
		Unit:           models.UnitFor(sensor.Category),
		Timestamp:      timestamp,
		Quality:        quality,
		TriggeredAlert: triggered,
	}

	sensor.LastReading = value
	sensor.LastReadingTime = timestamp

	m.readings = append(m.readings, reading)

	var alert models.Alert
	var listeners []AlertListener
	if triggered {
		alert = m.createAlertLocked(sensor, value)
		listeners = make([]AlertListener, len(m.listeners))
		copy(listeners, m.listeners)
	}

	m.mu.Unlock()

	if triggered {
		m.notify(listeners, alert)
	}

	return reading, nil
}

// assessQuality 依据最优区间分级读数质量
func assessQuality(value float64, t models.Thresholds) string {
	switch {
	case t.OptimalMin <= value && value <= t.OptimalMax:
		return models.QualityGood
	case value < t.OptimalMin*0.8 || value > t.OptimalMax*1.2:
		return models.QualityPoor
	default:
		return models.QualityFair
	}
}

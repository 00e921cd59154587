package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/Srujan0798/Rest-iN-U/internal/models"
)

// NetworkStatus 生成网络状态快照
func (m *Manager) NetworkStatus() models.SensorNetwork {
	m.mu.Lock()
	defer m.mu.Unlock()

	online := 0
	for _, sensor := range m.sensors {
		if sensor.Status == models.StatusOnline {
			online++
		}
	}
	offline := len(m.sensors) - online

	activeAlerts := m.activeAlertsLocked()
	criticalCount := 0
	for _, alert := range activeAlerts {
		if alert.Severity == models.SeverityCritical {
			criticalCount++
		}
	}

	var health string
	switch {
	case offline == 0 && len(activeAlerts) == 0:
		health = models.HealthExcellent
	case offline <= 1 && criticalCount == 0:
		health = models.HealthGood
	case offline <= 2:
		health = models.HealthFair
	default:
		health = models.HealthPoor
	}

	now := nowFunc()
	daily := 0
	for _, reading := range m.readings {
		y1, m1, d1 := reading.Timestamp.Date()
		y2, m2, d2 := now.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			daily++
		}
	}

	return models.SensorNetwork{
		PropertyID:     m.propertyID,
		TotalSensors:   len(m.sensors),
		OnlineSensors:  online,
		OfflineSensors: offline,
		Sensors:        m.sensorsLocked(),
		ActiveAlerts:   activeAlerts,
		DailyReadings:  daily,
		NetworkHealth:  health,
	}
}

// CurrentReadings 返回每个传感器的当前读数视图，质量按最近值重新评估
func (m *Manager) CurrentReadings() map[string]models.CurrentReading {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := make(map[string]models.CurrentReading, len(m.sensors))
	for id, sensor := range m.sensors {
		current[id] = models.CurrentReading{
			SensorID:  id,
			Category:  sensor.Category,
			Location:  sensor.Location,
			Room:      sensor.Room,
			Value:     sensor.LastReading,
			Unit:      models.UnitFor(sensor.Category),
			Quality:   assessQuality(sensor.LastReading, sensor.Thresholds),
			Timestamp: sensor.LastReadingTime,
			Status:    sensor.Status,
		}
	}
	return current
}

// History 返回传感器在最近 hours 小时内的读数，按时间戳升序
func (m *Manager) History(sensorID string, hours int) ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sensors[sensorID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrSensorNotFound, sensorID)
	}

	cutoff := nowFunc().Add(-time.Duration(hours) * time.Hour)

	entries := []models.HistoryEntry{}
	for _, reading := range m.readings {
		if reading.SensorID == sensorID && reading.Timestamp.After(cutoff) {
			entries = append(entries, models.HistoryEntry{
				Value:     reading.Value,
				Timestamp: reading.Timestamp,
				Quality:   reading.Quality,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	return entries, nil
}

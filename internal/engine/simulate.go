package engine

import (
	"math/rand"
	"time"

	"github.com/Srujan0798/Rest-iN-U/internal/models"
)

// Simulate 为每个已注册传感器生成最近 hours 小时的模拟读数（每小时一条），
// 取值在最优区间中点附近波动，用于演示和联调
func (m *Manager) Simulate(hours int) error {
	m.mu.Lock()
	sensors := make([]models.Sensor, 0, len(m.order))
	for _, id := range m.order {
		sensors = append(sensors, *m.sensors[id])
	}
	m.mu.Unlock()

	now := nowFunc()
	for _, sensor := range sensors {
		mid := (sensor.Thresholds.OptimalMin + sensor.Thresholds.OptimalMax) / 2
		variation := (sensor.Thresholds.OptimalMax - sensor.Thresholds.OptimalMin) / 4

		for hour := 0; hour < hours; hour++ {
			timestamp := now.Add(-time.Duration(hours-hour) * time.Hour)
			value := mid + (rand.Float64()*2-1)*variation
			if _, err := m.Ingest(sensor.SensorID, value, timestamp); err != nil {
				return err
			}
		}
	}
	return nil
}

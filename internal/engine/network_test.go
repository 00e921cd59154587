package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Srujan0798/Rest-iN-U/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerSensors(t *testing.T, m *Manager, count int) []models.Sensor {
	t.Helper()
	sensors := make([]models.Sensor, 0, count)
	for i := 0; i < count; i++ {
		sensor, err := m.RegisterSensor(models.CategoryTemperature, "Main Hall", "Living Room")
		require.NoError(t, err)
		sensors = append(sensors, sensor)
	}
	return sensors
}

// ============================================
// 网络健康度测试
// ============================================

func TestNetworkStatus_Excellent(t *testing.T) {
	m := newTestManager()
	sensors := registerSensors(t, m, 3)
	ingestValue(t, m, sensors[0].SensorID, 23)

	network := m.NetworkStatus()

	assert.Equal(t, "PROP-001", network.PropertyID)
	assert.Equal(t, 3, network.TotalSensors)
	assert.Equal(t, 3, network.OnlineSensors)
	assert.Equal(t, 0, network.OfflineSensors)
	assert.Empty(t, network.ActiveAlerts)
	assert.Equal(t, models.HealthExcellent, network.NetworkHealth)
}

func TestNetworkStatus_GoodWithOneOffline(t *testing.T) {
	m := newTestManager()
	sensors := registerSensors(t, m, 3)
	require.NoError(t, m.SetSensorStatus(sensors[0].SensorID, models.StatusOffline))

	network := m.NetworkStatus()

	assert.Equal(t, 2, network.OnlineSensors)
	assert.Equal(t, 1, network.OfflineSensors)
	assert.Equal(t, models.HealthGood, network.NetworkHealth)
}

func TestNetworkStatus_GoodWithWarningAlert(t *testing.T) {
	// 有活跃非 Critical 报警时不再 Excellent，但仍 Good
	m := newTestManager()
	sensors := registerSensors(t, m, 2)
	ingestValue(t, m, sensors[0].SensorID, 43)

	network := m.NetworkStatus()

	require.Len(t, network.ActiveAlerts, 1)
	assert.Equal(t, models.SeverityWarning, network.ActiveAlerts[0].Severity)
	assert.Equal(t, models.HealthGood, network.NetworkHealth)
}

func TestNetworkStatus_FairWithCriticalAlert(t *testing.T) {
	m := newTestManager()
	sensors := registerSensors(t, m, 2)
	ingestValue(t, m, sensors[0].SensorID, 60)

	network := m.NetworkStatus()

	require.Len(t, network.ActiveAlerts, 1)
	assert.Equal(t, models.SeverityCritical, network.ActiveAlerts[0].Severity)
	assert.Equal(t, models.HealthFair, network.NetworkHealth)
}

func TestNetworkStatus_FairWithTwoOffline(t *testing.T) {
	m := newTestManager()
	sensors := registerSensors(t, m, 4)
	require.NoError(t, m.SetSensorStatus(sensors[0].SensorID, models.StatusOffline))
	require.NoError(t, m.SetSensorStatus(sensors[1].SensorID, models.StatusOffline))

	network := m.NetworkStatus()

	assert.Equal(t, models.HealthFair, network.NetworkHealth)
}

func TestNetworkStatus_PoorWithThreeOffline(t *testing.T) {
	m := newTestManager()
	sensors := registerSensors(t, m, 5)
	for _, sensor := range sensors[:3] {
		require.NoError(t, m.SetSensorStatus(sensor.SensorID, models.StatusOffline))
	}

	network := m.NetworkStatus()

	assert.Equal(t, 2, network.OnlineSensors)
	assert.Equal(t, models.HealthPoor, network.NetworkHealth)
}

func TestNetworkStatus_RecoversAfterResolve(t *testing.T) {
	m := newTestManager()
	sensors := registerSensors(t, m, 2)
	ingestValue(t, m, sensors[0].SensorID, 60)

	require.Equal(t, models.HealthFair, m.NetworkStatus().NetworkHealth)

	require.True(t, m.Resolve("A-000001"))

	assert.Equal(t, models.HealthExcellent, m.NetworkStatus().NetworkHealth)
}

// ============================================
// 当日读数计数测试
// ============================================

func TestNetworkStatus_DailyReadings(t *testing.T) {
	m := newTestManager()
	sensors := registerSensors(t, m, 1)
	sensorID := sensors[0].SensorID

	now := time.Now()
	_, err := m.Ingest(sensorID, 22, now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = m.Ingest(sensorID, 23, now)
	require.NoError(t, err)
	// 昨日读数不计入当日统计
	_, err = m.Ingest(sensorID, 24, now.Add(-25*time.Hour))
	require.NoError(t, err)

	network := m.NetworkStatus()

	assert.Equal(t, 2, network.DailyReadings)
}

// ============================================
// 当前读数视图测试
// ============================================

func TestCurrentReadings(t *testing.T) {
	m := newTestManager()
	temp, err := m.RegisterSensor(models.CategoryTemperature, "Main Hall", "Living Room")
	require.NoError(t, err)
	humidity, err := m.RegisterSensor(models.CategoryHumidity, "Main Hall", "Bedroom")
	require.NoError(t, err)

	ingestValue(t, m, temp.SensorID, 23)
	ingestValue(t, m, humidity.SensorID, 75)

	current := m.CurrentReadings()
	require.Len(t, current, 2)

	tempReading := current[temp.SensorID]
	assert.Equal(t, models.CategoryTemperature, tempReading.Category)
	assert.Equal(t, "Living Room", tempReading.Room)
	assert.Equal(t, 23.0, tempReading.Value)
	assert.Equal(t, "°C", tempReading.Unit)
	assert.Equal(t, models.QualityGood, tempReading.Quality)
	assert.Equal(t, models.StatusOnline, tempReading.Status)

	// 湿度 75 超过 60×1.2=72，质量按最近值重新评估为 Poor
	humidityReading := current[humidity.SensorID]
	assert.Equal(t, 75.0, humidityReading.Value)
	assert.Equal(t, models.QualityPoor, humidityReading.Quality)
}

// ============================================
// 历史窗口测试
// ============================================

func TestHistory_UnknownSensor(t *testing.T) {
	m := newTestManager()

	_, err := m.History("S-9999", 24)

	assert.True(t, errors.Is(err, ErrSensorNotFound))
}

func TestHistory_WindowAndOrdering(t *testing.T) {
	m := newTestManager()
	sensors := registerSensors(t, m, 2)
	sensorID := sensors[0].SensorID

	now := time.Now()
	// 乱序摄入：历史输出仍按时间戳升序
	_, err := m.Ingest(sensorID, 22, now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = m.Ingest(sensorID, 21, now.Add(-3*time.Hour))
	require.NoError(t, err)
	_, err = m.Ingest(sensorID, 23, now.Add(-2*time.Hour))
	require.NoError(t, err)
	// 窗口之外的读数被排除
	_, err = m.Ingest(sensorID, 20, now.Add(-30*time.Hour))
	require.NoError(t, err)
	// 其他传感器的读数互不串扰
	_, err = m.Ingest(sensors[1].SensorID, 24, now)
	require.NoError(t, err)

	history, err := m.History(sensorID, 24)
	require.NoError(t, err)

	require.Len(t, history, 3)
	assert.Equal(t, 21.0, history[0].Value)
	assert.Equal(t, 23.0, history[1].Value)
	assert.Equal(t, 22.0, history[2].Value)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Timestamp.Before(history[i-1].Timestamp))
	}
}

func TestHistory_EmptyWindow(t *testing.T) {
	m := newTestManager()
	sensors := registerSensors(t, m, 1)

	history, err := m.History(sensors[0].SensorID, 24)

	require.NoError(t, err)
	assert.Empty(t, history)
}

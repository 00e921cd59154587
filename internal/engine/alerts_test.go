package engine

import (
	"testing"

	"github.com/Srujan0798/Rest-iN-U/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// 级别分级测试
// ============================================

func TestSeverity_Classification(t *testing.T) {
	// 温度阈值 [10, 35]：Warning 界 42/8，Critical 界 52.5/5
	tests := []struct {
		name     string
		value    float64
		severity models.AlertSeverity
	}{
		{"just above max", 36, models.SeverityInfo},
		{"above warning ceiling", 43, models.SeverityWarning},
		{"above critical ceiling", 53, models.SeverityCritical},
		{"just below min", 9, models.SeverityInfo},
		{"below warning floor", 7, models.SeverityWarning},
		{"below critical floor", 4, models.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager()
			sensor := registerTempSensor(t, m)

			reading, err := m.IngestNow(sensor.SensorID, tt.value)
			require.NoError(t, err)
			require.True(t, reading.TriggeredAlert)

			alerts := m.ActiveAlerts()
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.severity, alerts[0].Severity)
		})
	}
}

func TestSeverity_MonotonicWithDistance(t *testing.T) {
	// 越界幅度增大时级别单调不减
	m := newTestManager()
	sensor := registerTempSensor(t, m)

	values := []float64{36, 40, 43, 50, 53, 80}
	for _, value := range values {
		_, err := m.IngestNow(sensor.SensorID, value)
		require.NoError(t, err)
	}

	alerts := m.Alerts()
	require.Len(t, alerts, len(values))
	for i := 1; i < len(alerts); i++ {
		assert.GreaterOrEqual(t, alerts[i].Severity.Rank(), alerts[i-1].Severity.Rank(),
			"severity must not decrease from %v to %v", alerts[i-1].Value, alerts[i].Value)
	}
}

func TestSeverity_EmergencyNeverProduced(t *testing.T) {
	m := newTestManager()
	sensor := registerTempSensor(t, m)

	for _, value := range []float64{-1000, 36, 53, 10000} {
		_, err := m.IngestNow(sensor.SensorID, value)
		require.NoError(t, err)
	}

	for _, alert := range m.Alerts() {
		assert.NotEqual(t, models.SeverityEmergency, alert.Severity)
	}
}

// ============================================
// 报警生命周期测试
// ============================================

func TestAlert_IDsMonotonic(t *testing.T) {
	m := newTestManager()
	sensor := registerTempSensor(t, m)

	_, err := m.IngestNow(sensor.SensorID, 40)
	require.NoError(t, err)
	_, err = m.IngestNow(sensor.SensorID, 41)
	require.NoError(t, err)

	alerts := m.ActiveAlerts()
	require.Len(t, alerts, 2)
	assert.Equal(t, "A-000001", alerts[0].AlertID)
	assert.Equal(t, "A-000002", alerts[1].AlertID)
}

func TestAlert_NoDeduplication(t *testing.T) {
	// 同一传感器重复越界，每条读数各产生一条报警
	m := newTestManager()
	sensor := registerTempSensor(t, m)

	for i := 0; i < 3; i++ {
		_, err := m.IngestNow(sensor.SensorID, 40)
		require.NoError(t, err)
	}

	assert.Len(t, m.ActiveAlerts(), 3)
}

func TestAcknowledge_Idempotent(t *testing.T) {
	m := newTestManager()
	sensor := registerTempSensor(t, m)

	_, err := m.IngestNow(sensor.SensorID, 40)
	require.NoError(t, err)

	alertID := m.ActiveAlerts()[0].AlertID

	assert.True(t, m.Acknowledge(alertID))
	assert.True(t, m.Acknowledge(alertID))

	alerts := m.ActiveAlerts()
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Acknowledged)
	// 确认不等于解除
	assert.False(t, alerts[0].Resolved)
}

func TestAcknowledge_SoftMiss(t *testing.T) {
	m := newTestManager()

	assert.False(t, m.Acknowledge("A-999999"))
}

func TestResolve_WithAndWithoutAcknowledge(t *testing.T) {
	m := newTestManager()
	sensor := registerTempSensor(t, m)

	_, err := m.IngestNow(sensor.SensorID, 40)
	require.NoError(t, err)
	_, err = m.IngestNow(sensor.SensorID, 41)
	require.NoError(t, err)

	alerts := m.ActiveAlerts()
	require.Len(t, alerts, 2)

	// 先确认后解除
	assert.True(t, m.Acknowledge(alerts[0].AlertID))
	assert.True(t, m.Resolve(alerts[0].AlertID))

	// 不确认直接解除
	assert.True(t, m.Resolve(alerts[1].AlertID))

	assert.Empty(t, m.ActiveAlerts())

	all := m.Alerts()
	require.Len(t, all, 2)
	for _, alert := range all {
		assert.True(t, alert.Resolved)
		require.NotNil(t, alert.ResolutionTime)
		assert.False(t, alert.ResolutionTime.IsZero())
	}
	assert.True(t, all[0].Acknowledged)
	assert.False(t, all[1].Acknowledged)
}

func TestResolve_SoftMiss(t *testing.T) {
	m := newTestManager()

	assert.False(t, m.Resolve("A-999999"))
}

func TestActiveAlerts_CreationOrder(t *testing.T) {
	m := newTestManager()
	sensor := registerTempSensor(t, m)

	for _, value := range []float64{40, 41, 42.5} {
		_, err := m.IngestNow(sensor.SensorID, value)
		require.NoError(t, err)
	}

	require.True(t, m.Resolve("A-000002"))

	alerts := m.ActiveAlerts()
	require.Len(t, alerts, 2)
	assert.Equal(t, "A-000001", alerts[0].AlertID)
	assert.Equal(t, "A-000003", alerts[1].AlertID)
}

// ============================================
// 监听器隔离测试
// ============================================

func TestListener_InvokedInRegistrationOrder(t *testing.T) {
	m := newTestManager()
	sensor := registerTempSensor(t, m)

	var calls []string
	m.RegisterListener(func(alert models.Alert) {
		calls = append(calls, "first:"+alert.AlertID)
	})
	m.RegisterListener(func(alert models.Alert) {
		calls = append(calls, "second:"+alert.AlertID)
	})

	_, err := m.IngestNow(sensor.SensorID, 40)
	require.NoError(t, err)

	assert.Equal(t, []string{"first:A-000001", "second:A-000001"}, calls)
}

func TestListener_NotInvokedWithoutBreach(t *testing.T) {
	m := newTestManager()
	sensor := registerTempSensor(t, m)

	invoked := false
	m.RegisterListener(func(models.Alert) {
		invoked = true
	})

	_, err := m.IngestNow(sensor.SensorID, 23)
	require.NoError(t, err)

	assert.False(t, invoked)
}

func TestListener_PanicIsolated(t *testing.T) {
	m := newTestManager()
	sensor := registerTempSensor(t, m)

	var delivered []string
	m.RegisterListener(func(models.Alert) {
		panic("listener failure")
	})
	m.RegisterListener(func(alert models.Alert) {
		delivered = append(delivered, alert.AlertID)
	})

	reading, err := m.IngestNow(sensor.SensorID, 40)

	// 摄入不受监听器失败影响：读数与报警均已落地，后续监听器照常收到
	require.NoError(t, err)
	assert.True(t, reading.TriggeredAlert)
	assert.Len(t, m.ActiveAlerts(), 1)
	assert.Equal(t, []string{"A-000001"}, delivered)

	history, err := m.History(sensor.SensorID, 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

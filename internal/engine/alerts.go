package engine

import (
	"fmt"

	"github.com/Srujan0798/Rest-iN-U/internal/models"
)

// createAlertLocked 为阈值越界生成报警，调用方必须持有 m.mu
func (m *Manager) createAlertLocked(sensor *models.Sensor, value float64) models.Alert {
	t := sensor.Thresholds

	threshold := t.Min
	if value > t.Max {
		threshold = t.Max
	}

	severity := classifySeverity(value, t)

	m.alertCounter++
	alert := models.Alert{
		AlertID:   fmt.Sprintf("A-%06d", m.alertCounter),
		SensorID:  sensor.SensorID,
		Severity:  severity,
		Message:   fmt.Sprintf("%s in %s: %v%s (Threshold: %v)", sensor.Category, sensor.Room, value, models.UnitFor(sensor.Category), threshold),
		Value:     value,
		Threshold: threshold,
		Timestamp: nowFunc(),
	}

	m.alerts = append(m.alerts, &alert)
	return alert
}

// classifySeverity 依据越界幅度分级
// Emergency 为保留级别，当前规则不会产生
func classifySeverity(value float64, t models.Thresholds) models.AlertSeverity {
	switch {
	case value > t.Max*1.5 || value < t.Min*0.5:
		return models.SeverityCritical
	case value > t.Max*1.2 || value < t.Min*0.8:
		return models.SeverityWarning
	default:
		return models.SeverityInfo
	}
}

// notify 在锁外逐个调用监听器，单个监听器 panic 被隔离丢弃
// 引擎自身不记录监听器失败（日志是监听器自己的责任）
func (m *Manager) notify(listeners []AlertListener, alert models.Alert) {
	for _, listener := range listeners {
		invokeListener(listener, alert)
	}
}

func invokeListener(listener AlertListener, alert models.Alert) {
	defer func() {
		_ = recover()
	}()
	listener(alert)
}

// Acknowledge 确认报警（幂等）；alert_id 不存在时返回 false，不报错
func (m *Manager) Acknowledge(alertID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, alert := range m.alerts {
		if alert.AlertID == alertID {
			alert.Acknowledged = true
			return true
		}
	}
	return false
}

// Resolve 解除报警（终态）；alert_id 不存在时返回 false，不报错
// 解除与确认相互独立，可在未确认时直接解除
func (m *Manager) Resolve(alertID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, alert := range m.alerts {
		if alert.AlertID == alertID {
			alert.Resolved = true
			now := nowFunc()
			alert.ResolutionTime = &now
			return true
		}
	}
	return false
}

// ActiveAlerts 按创建顺序返回所有未解除的报警
func (m *Manager) ActiveAlerts() []models.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeAlertsLocked()
}

func (m *Manager) activeAlertsLocked() []models.Alert {
	out := []models.Alert{}
	for _, alert := range m.alerts {
		if alert.Active() {
			out = append(out, *alert)
		}
	}
	return out
}

// Alerts 按创建顺序返回全部报警（含已解除）
func (m *Manager) Alerts() []models.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Alert, 0, len(m.alerts))
	for _, alert := range m.alerts {
		out = append(out, *alert)
	}
	return out
}

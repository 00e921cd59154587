package models

import "time"

// AlertSeverity 报警级别
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "Info"
	SeverityWarning  AlertSeverity = "Warning"
	SeverityCritical AlertSeverity = "Critical"
	// SeverityEmergency 保留的最高级别，当前没有任何规则会产生它
	SeverityEmergency AlertSeverity = "Emergency"
)

// severityRank 级别排序（Info < Warning < Critical < Emergency）
var severityRank = map[AlertSeverity]int{
	SeverityInfo:      0,
	SeverityWarning:   1,
	SeverityCritical:  2,
	SeverityEmergency: 3,
}

// Rank 返回级别序号，用于比较
func (s AlertSeverity) Rank() int {
	return severityRank[s]
}

// Alert 阈值违规产生的报警
// Acknowledged 与 Resolved 是两个独立的布尔状态，不是单一枚举；
// "active" 的定义是 Resolved == false，与是否确认无关
type Alert struct {
	AlertID        string         `json:"alert_id" db:"alert_id"`
	SensorID       string         `json:"sensor_id" db:"sensor_id"`
	Severity       AlertSeverity  `json:"severity" db:"severity"`
	Message        string         `json:"message" db:"message"`
	Value          float64        `json:"value" db:"value"`
	Threshold      float64        `json:"threshold" db:"threshold"`
	Timestamp      time.Time      `json:"timestamp" db:"timestamp"`
	Acknowledged   bool           `json:"acknowledged" db:"acknowledged"`
	Resolved       bool           `json:"resolved" db:"resolved"`
	ResolutionTime *time.Time     `json:"resolution_time,omitempty" db:"resolution_time"`
}

// Active 报警是否仍然活跃（未解除）
func (a *Alert) Active() bool {
	return !a.Resolved
}

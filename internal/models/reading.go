package models

import "time"

// ReadingQuality 读数质量分级
const (
	QualityGood = "Good"
	QualityFair = "Fair"
	QualityPoor = "Poor"
)

// SensorReading 单条传感器读数（写入后不可变，只追加不修改）
type SensorReading struct {
	ReadingID      string         `json:"reading_id" db:"reading_id"`
	SensorID       string         `json:"sensor_id" db:"sensor_id"`
	Category       SensorCategory `json:"sensor_type" db:"category"`
	Value          float64        `json:"value" db:"value"`
	Unit           string         `json:"unit" db:"unit"`
	Timestamp      time.Time      `json:"timestamp" db:"timestamp"`
	Quality        string         `json:"quality" db:"quality"`
	TriggeredAlert bool           `json:"triggered_alert" db:"triggered_alert"`
}

// HistoryEntry 历史查询返回的单条记录
type HistoryEntry struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	Quality   string    `json:"quality"`
}

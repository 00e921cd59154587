package models

import "time"

// NetworkHealth 网络健康度标签
const (
	HealthExcellent = "Excellent"
	HealthGood      = "Good"
	HealthFair      = "Fair"
	HealthPoor      = "Poor"
)

// SensorNetwork 传感器网络状态快照（派生读模型，不落库）
type SensorNetwork struct {
	PropertyID     string   `json:"property_id"`
	TotalSensors   int      `json:"total_sensors"`
	OnlineSensors  int      `json:"online_sensors"`
	OfflineSensors int      `json:"offline_sensors"`
	Sensors        []Sensor `json:"sensors"`
	ActiveAlerts   []Alert  `json:"active_alerts"`
	DailyReadings  int      `json:"daily_readings"`
	NetworkHealth  string   `json:"network_health"`
}

// CurrentReading 单个传感器的当前读数视图
type CurrentReading struct {
	SensorID  string         `json:"sensor_id"`
	Category  SensorCategory `json:"sensor_type"`
	Location  string         `json:"location"`
	Room      string         `json:"room"`
	Value     float64        `json:"value"`
	Unit      string         `json:"unit"`
	Quality   string         `json:"quality"`
	Timestamp time.Time      `json:"timestamp"`
	Status    string         `json:"status"`
}

// ComfortScore 舒适度评分结果
type ComfortScore struct {
	OverallScore    float64            `json:"overall_score"`
	Category        string             `json:"category"`
	ComponentScores map[string]float64 `json:"component_scores"`
	Recommendations []string           `json:"recommendations"`
}

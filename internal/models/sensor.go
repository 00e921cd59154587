package models

import (
	"fmt"
	"time"
)

// SensorCategory 传感器类别（值即展示名，与报警消息格式一致）
type SensorCategory string

const (
	CategoryTemperature SensorCategory = "Temperature"
	CategoryHumidity    SensorCategory = "Humidity"
	CategoryAirQuality  SensorCategory = "Air Quality (AQI)"
	CategoryCO2         SensorCategory = "CO2"
	CategoryVOC         SensorCategory = "Volatile Organic Compounds"
	CategoryParticulate SensorCategory = "Particulate Matter (PM2.5/PM10)"
	CategoryNoise       SensorCategory = "Noise Level"
	CategoryLight       SensorCategory = "Light Intensity"
	CategoryMotion      SensorCategory = "Motion"
	CategoryDoorWindow  SensorCategory = "Door/Window Contact"
	CategoryWaterLeak   SensorCategory = "Water Leak"
	CategorySmoke       SensorCategory = "Smoke"
	CategoryGas         SensorCategory = "Gas Leak"
	CategoryRadon       SensorCategory = "Radon"
	CategoryElectricity SensorCategory = "Electricity Usage"
)

// AllCategories 所有合法的传感器类别
var AllCategories = []SensorCategory{
	CategoryTemperature,
	CategoryHumidity,
	CategoryAirQuality,
	CategoryCO2,
	CategoryVOC,
	CategoryParticulate,
	CategoryNoise,
	CategoryLight,
	CategoryMotion,
	CategoryDoorWindow,
	CategoryWaterLeak,
	CategorySmoke,
	CategoryGas,
	CategoryRadon,
	CategoryElectricity,
}

// ParseCategory 校验并返回传感器类别（注册入口先于 Registry 拒绝非法类别）
func ParseCategory(s string) (SensorCategory, error) {
	for _, c := range AllCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid sensor category: %s", s)
}

// SensorStatus 传感器运行状态
const (
	StatusOnline      = "Online"
	StatusOffline     = "Offline"
	StatusMaintenance = "Maintenance"
)

// Thresholds 阈值四元组，注册时必须满足 Min ≤ OptimalMin ≤ OptimalMax ≤ Max
type Thresholds struct {
	Min        float64 `json:"min" db:"min_threshold"`
	Max        float64 `json:"max" db:"max_threshold"`
	OptimalMin float64 `json:"optimal_min" db:"optimal_min"`
	OptimalMax float64 `json:"optimal_max" db:"optimal_max"`
}

// Validate 校验阈值不变量
func (t Thresholds) Validate() error {
	if t.Min > t.OptimalMin || t.OptimalMin > t.OptimalMax || t.OptimalMax > t.Max {
		return fmt.Errorf("invalid thresholds: require min <= optimal_min <= optimal_max <= max, got %v", t)
	}
	return nil
}

// Sensor 传感器定义（注册后 ID 稳定不变，引擎范围内不删除）
type Sensor struct {
	SensorID        string         `json:"sensor_id" db:"sensor_id"`
	Category        SensorCategory `json:"sensor_type" db:"category"`
	Location        string         `json:"location" db:"location"`
	Room            string         `json:"room" db:"room"`
	Status          string         `json:"status" db:"status"`
	BatteryLevel    int            `json:"battery_level" db:"battery_level"`
	LastReading     float64        `json:"last_reading" db:"last_reading"`
	LastReadingTime time.Time      `json:"last_reading_time" db:"last_reading_time"`
	CalibrationDate time.Time      `json:"calibration_date" db:"calibration_date"`
	Thresholds      Thresholds     `json:"thresholds"`
}

// CategoryConfig 类别默认配置（单位 + 阈值四元组）
type CategoryConfig struct {
	Unit       string
	Min        float64
	Max        float64
	OptimalMin float64
	OptimalMax float64
}

// categoryConfigs 各类别的默认单位与阈值
var categoryConfigs = map[SensorCategory]CategoryConfig{
	CategoryTemperature: {Unit: "°C", Min: 10, Max: 35, OptimalMin: 20, OptimalMax: 26},
	CategoryHumidity:    {Unit: "%", Min: 20, Max: 80, OptimalMin: 40, OptimalMax: 60},
	CategoryAirQuality:  {Unit: "AQI", Min: 0, Max: 150, OptimalMin: 0, OptimalMax: 50},
	CategoryCO2:         {Unit: "ppm", Min: 400, Max: 1000, OptimalMin: 400, OptimalMax: 600},
	CategoryVOC:         {Unit: "ppb", Min: 0, Max: 500, OptimalMin: 0, OptimalMax: 100},
	CategoryParticulate: {Unit: "μg/m³", Min: 0, Max: 60, OptimalMin: 0, OptimalMax: 12},
	CategoryNoise:       {Unit: "dB", Min: 0, Max: 70, OptimalMin: 0, OptimalMax: 45},
	CategoryLight:       {Unit: "lux", Min: 0, Max: 10000, OptimalMin: 300, OptimalMax: 500},
	CategoryElectricity: {Unit: "kWh", Min: 0, Max: 1000, OptimalMin: 0, OptimalMax: 30},
}

// defaultConfig 未配置类别的兜底值
var defaultConfig = CategoryConfig{Unit: "", Min: 0, Max: 100, OptimalMin: 20, OptimalMax: 80}

// ConfigFor 返回类别的默认配置
func ConfigFor(category SensorCategory) CategoryConfig {
	if cfg, ok := categoryConfigs[category]; ok {
		return cfg
	}
	return defaultConfig
}

// DefaultThresholds 返回类别的默认阈值四元组
func DefaultThresholds(category SensorCategory) Thresholds {
	cfg := ConfigFor(category)
	return Thresholds{
		Min:        cfg.Min,
		Max:        cfg.Max,
		OptimalMin: cfg.OptimalMin,
		OptimalMax: cfg.OptimalMax,
	}
}

// UnitFor 返回类别的计量单位
func UnitFor(category SensorCategory) string {
	return ConfigFor(category).Unit
}

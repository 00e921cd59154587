package engine

import (
	"math"

	"github.com/Srujan0798/Rest-iN-U/internal/models"
)

// comfortWeights 参与舒适度评分的类别权重
var comfortWeights = map[models.SensorCategory]float64{
	models.CategoryTemperature: 0.25,
	models.CategoryHumidity:    0.20,
	models.CategoryAirQuality:  0.25,
	models.CategoryCO2:         0.15,
	models.CategoryNoise:       0.10,
	models.CategoryLight:       0.05,
}

// comfortRecommendations 各类别得分低于 70 时附带的整改建议，按固定顺序输出
var comfortRecommendations = []struct {
	Category models.SensorCategory
	Message  string
}{
	{models.CategoryTemperature, "Adjust HVAC temperature settings"},
	{models.CategoryHumidity, "Consider using humidifier/dehumidifier"},
	{models.CategoryAirQuality, "Improve ventilation or use air purifier"},
	{models.CategoryCO2, "Increase fresh air intake"},
	{models.CategoryNoise, "Investigate noise sources"},
}

// ComfortScore 计算物业整体舒适度：
// 对参与加权的类别逐传感器打分，按实际存在类别的权重和归一化，
// 总分保留一位小数并映射到等级标签
func (m *Manager) ComfortScore() models.ComfortScore {
	m.mu.Lock()
	defer m.mu.Unlock()

	scores := make(map[string]float64)
	for _, id := range m.order {
		sensor := m.sensors[id]
		if _, ok := comfortWeights[sensor.Category]; ok {
			scores[string(sensor.Category)] = sensorScore(*sensor)
		}
	}

	var weightedSum, totalWeight float64
	for category, weight := range comfortWeights {
		if score, ok := scores[string(category)]; ok {
			weightedSum += score * weight
			totalWeight += weight
		}
	}

	overall := 50.0
	if totalWeight > 0 {
		overall = weightedSum / totalWeight
	}
	overall = math.Round(overall*10) / 10

	return models.ComfortScore{
		OverallScore:    overall,
		Category:        scoreCategory(overall),
		ComponentScores: scores,
		Recommendations: recommendations(scores),
	}
}

// sensorScore 单传感器得分（0-100）
// 区间内按偏离中点扣分；区间外按相对偏差扣分。
// 下/上界为 0 的退化区间直接按边界计分，避免除零
func sensorScore(sensor models.Sensor) float64 {
	lo := sensor.Thresholds.OptimalMin
	hi := sensor.Thresholds.OptimalMax
	value := sensor.LastReading

	if lo <= value && value <= hi {
		mid := (lo + hi) / 2
		half := hi - mid
		if half == 0 {
			return 100
		}
		score := 100 - 20*math.Abs(value-mid)/half
		return math.Max(0, score)
	}

	var deviation float64
	if value < lo {
		if lo == 0 {
			return 0
		}
		deviation = (lo - value) / lo
	} else {
		if hi == 0 {
			return 0
		}
		deviation = (value - hi) / hi
	}
	return math.Max(0, 80-deviation*50)
}

// scoreCategory 分数到等级标签
func scoreCategory(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Fair"
	case score >= 40:
		return "Poor"
	default:
		return "Critical"
	}
}

// recommendations 生成整改建议，全部达标时返回单条提示
func recommendations(scores map[string]float64) []string {
	var out []string
	for _, rec := range comfortRecommendations {
		if score, ok := scores[string(rec.Category)]; ok && score < 70 {
			out = append(out, rec.Message)
		}
	}
	if len(out) == 0 {
		return []string{"All parameters within optimal range"}
	}
	return out
}

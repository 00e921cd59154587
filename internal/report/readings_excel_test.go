package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/Srujan0798/Rest-iN-U/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testSensor() models.Sensor {
	return models.Sensor{
		SensorID: "S-0001",
		Category: models.CategoryTemperature,
		Location: "Main Hall",
		Room:     "Living Room",
	}
}

// ============================================
// 历史读数导出测试
// ============================================

func TestGenerateHistoryExport(t *testing.T) {
	timestamp := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	entries := []models.HistoryEntry{
		{Value: 22.5, Timestamp: timestamp, Quality: models.QualityGood},
		{Value: 40, Timestamp: timestamp.Add(time.Hour), Quality: models.QualityPoor},
	}

	data, err := GenerateHistoryExport(testSensor(), entries)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sensor History")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, HistoryExportHeader, rows[0])

	assert.Equal(t, "S-0001", rows[1][0])
	assert.Equal(t, "Temperature", rows[1][1])
	assert.Equal(t, "Living Room", rows[1][2])
	assert.Equal(t, "22.5", rows[1][3])
	assert.Equal(t, "°C", rows[1][4])
	assert.Equal(t, "Good", rows[1][5])
	assert.Equal(t, "2026-09-01 10:30:00", rows[1][6])

	assert.Equal(t, "40", rows[2][3])
	assert.Equal(t, "Poor", rows[2][5])
}

func TestGenerateHistoryExport_EmptyHistory(t *testing.T) {
	data, err := GenerateHistoryExport(testSensor(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// 默认工作表被替换为导出页
	assert.Equal(t, []string{"Sensor History"}, f.GetSheetList())

	rows, err := f.GetRows("Sensor History")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, HistoryExportHeader, rows[0])
}

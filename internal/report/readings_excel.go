package report

import (
	"fmt"

	"github.com/Srujan0798/Rest-iN-U/internal/models"

	"github.com/xuri/excelize/v2"
)

// HistoryExportHeader 历史读数导出表头
var HistoryExportHeader = []string{
	"Sensor ID",
	"Sensor Type",
	"Room",
	"Value",
	"Unit",
	"Quality",
	"Timestamp",
}

// GenerateHistoryExport 生成传感器历史读数的 Excel 文件
// entries 为空时只输出表头
func GenerateHistoryExport(sensor models.Sensor, entries []models.HistoryEntry) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Sensor History"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range HistoryExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	unit := models.UnitFor(sensor.Category)
	for row, entry := range entries {
		values := []interface{}{
			sensor.SensorID,
			string(sensor.Category),
			sensor.Room,
			entry.Value,
			unit,
			entry.Quality,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	return buf.Bytes(), nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Srujan0798/Rest-iN-U/internal/models"

	"go.uber.org/zap"
)

// ReadingsRepository 读数归档仓库（sensor_readings 表，只追加）
// 按 (property_id, sensor_id, timestamp) 归档引擎内存日志，供离线查询
type ReadingsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReadingsRepository 创建读数归档仓库
func NewReadingsRepository(db *sql.DB, logger *zap.Logger) *ReadingsRepository {
	return &ReadingsRepository{
		db:     db,
		logger: logger,
	}
}

// InsertReading 追加一条读数归档
func (r *ReadingsRepository) InsertReading(ctx context.Context, propertyID string, reading *models.SensorReading) error {
	if propertyID == "" {
		return fmt.Errorf("property_id is required")
	}
	if reading == nil {
		return fmt.Errorf("reading is required")
	}

	query := `
		INSERT INTO sensor_readings (
			reading_id,
			property_id,
			sensor_id,
			category,
			value,
			unit,
			timestamp,
			quality,
			triggered_alert
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		reading.ReadingID,
		propertyID,
		reading.SensorID,
		string(reading.Category),
		reading.Value,
		reading.Unit,
		reading.Timestamp,
		reading.Quality,
		reading.TriggeredAlert,
	)

	if err != nil {
		return fmt.Errorf("failed to insert sensor reading: %w", err)
	}

	return nil
}

// ListBySensor 查询某传感器自 since 之后的读数归档，按时间升序
func (r *ReadingsRepository) ListBySensor(ctx context.Context, propertyID, sensorID string, since time.Time) ([]models.SensorReading, error) {
	if propertyID == "" {
		return nil, fmt.Errorf("property_id is required")
	}
	if sensorID == "" {
		return nil, fmt.Errorf("sensor_id is required")
	}

	query := `
		SELECT
			reading_id,
			sensor_id,
			category,
			value,
			unit,
			timestamp,
			quality,
			triggered_alert
		FROM sensor_readings
		WHERE property_id = $1
		  AND sensor_id = $2
		  AND timestamp > $3
		ORDER BY timestamp ASC
	`

	rows, err := r.db.QueryContext(ctx, query, propertyID, sensorID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query sensor readings: %w", err)
	}
	defer rows.Close()

	readings := []models.SensorReading{}
	for rows.Next() {
		var reading models.SensorReading
		var category string

		err := rows.Scan(
			&reading.ReadingID,
			&reading.SensorID,
			&category,
			&reading.Value,
			&reading.Unit,
			&reading.Timestamp,
			&reading.Quality,
			&reading.TriggeredAlert,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sensor reading: %w", err)
		}

		reading.Category = models.SensorCategory(category)
		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sensor readings: %w", err)
	}

	return readings, nil
}

// CountSince 统计某物业自 since 之后归档的读数条数
func (r *ReadingsRepository) CountSince(ctx context.Context, propertyID string, since time.Time) (int, error) {
	if propertyID == "" {
		return 0, fmt.Errorf("property_id is required")
	}

	query := `
		SELECT COUNT(*)
		FROM sensor_readings
		WHERE property_id = $1
		  AND timestamp > $2
	`

	var total int
	if err := r.db.QueryRowContext(ctx, query, propertyID, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count sensor readings: %w", err)
	}

	return total, nil
}

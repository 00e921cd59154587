package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Srujan0798/Rest-iN-U/internal/models"

	"go.uber.org/zap"
)

// AlertsRepository 报警归档仓库（sensor_alerts 表）
// 报警以键值记录归档，确认/解除以状态更新方式落库
type AlertsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAlertsRepository 创建报警归档仓库
func NewAlertsRepository(db *sql.DB, logger *zap.Logger) *AlertsRepository {
	return &AlertsRepository{
		db:     db,
		logger: logger,
	}
}

// InsertAlert 归档一条新报警
func (r *AlertsRepository) InsertAlert(ctx context.Context, propertyID string, alert *models.Alert) error {
	if propertyID == "" {
		return fmt.Errorf("property_id is required")
	}
	if alert == nil {
		return fmt.Errorf("alert is required")
	}

	query := `
		INSERT INTO sensor_alerts (
			alert_id,
			property_id,
			sensor_id,
			severity,
			message,
			value,
			threshold,
			timestamp,
			acknowledged,
			resolved,
			resolution_time
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		alert.AlertID,
		propertyID,
		alert.SensorID,
		string(alert.Severity),
		alert.Message,
		alert.Value,
		alert.Threshold,
		alert.Timestamp,
		alert.Acknowledged,
		alert.Resolved,
		alert.ResolutionTime,
	)

	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}

	return nil
}

// AcknowledgeAlert 将归档报警标记为已确认
// 与引擎一致采用软失败约定：alert_id 不存在时返回 false 而非错误
func (r *AlertsRepository) AcknowledgeAlert(ctx context.Context, propertyID, alertID string) (bool, error) {
	if propertyID == "" {
		return false, fmt.Errorf("property_id is required")
	}
	if alertID == "" {
		return false, fmt.Errorf("alert_id is required")
	}

	query := `
		UPDATE sensor_alerts
		SET acknowledged = TRUE
		WHERE alert_id = $1
		  AND property_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, alertID, propertyID)
	if err != nil {
		return false, fmt.Errorf("failed to acknowledge alert: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// ResolveAlert 将归档报警标记为已解除并记录解除时间
func (r *AlertsRepository) ResolveAlert(ctx context.Context, propertyID, alertID string, resolvedAt time.Time) (bool, error) {
	if propertyID == "" {
		return false, fmt.Errorf("property_id is required")
	}
	if alertID == "" {
		return false, fmt.Errorf("alert_id is required")
	}

	query := `
		UPDATE sensor_alerts
		SET resolved = TRUE,
		    resolution_time = $1
		WHERE alert_id = $2
		  AND property_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, resolvedAt, alertID, propertyID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve alert: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// ListActiveAlerts 查询某物业所有未解除的归档报警，按触发时间升序
func (r *AlertsRepository) ListActiveAlerts(ctx context.Context, propertyID string) ([]models.Alert, error) {
	if propertyID == "" {
		return nil, fmt.Errorf("property_id is required")
	}

	query := `
		SELECT
			alert_id,
			sensor_id,
			severity,
			message,
			value,
			threshold,
			timestamp,
			acknowledged,
			resolved,
			resolution_time
		FROM sensor_alerts
		WHERE property_id = $1
		  AND resolved = FALSE
		ORDER BY timestamp ASC
	`

	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active alerts: %w", err)
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		var alert models.Alert
		var severity string
		var resolutionTime sql.NullTime

		err := rows.Scan(
			&alert.AlertID,
			&alert.SensorID,
			&severity,
			&alert.Message,
			&alert.Value,
			&alert.Threshold,
			&alert.Timestamp,
			&alert.Acknowledged,
			&alert.Resolved,
			&resolutionTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}

		alert.Severity = models.AlertSeverity(severity)
		if resolutionTime.Valid {
			alert.ResolutionTime = &resolutionTime.Time
		}

		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, nil
}

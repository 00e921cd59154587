package notify

import (
	"time"

	"github.com/Srujan0798/Rest-iN-U/internal/engine"
	"github.com/Srujan0798/Rest-iN-U/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WebhookDelivery 推送给 Webhook 的报警载荷
type WebhookDelivery struct {
	DeliveryID string       `json:"delivery_id"`
	PropertyID string       `json:"property_id"`
	Alert      models.Alert `json:"alert"`
	SentAt     time.Time    `json:"sent_at"`
}

// WebhookNotifier 报警 Webhook 监听器
// 作为引擎监听器注册，每条新报警同步 POST 一次；
// 投递失败只记录日志，不影响摄入（引擎按监听器隔离约定吞掉任何 panic）
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	propertyID string
	logger     *zap.Logger
}

// NewWebhookNotifier 创建 Webhook 通知器
func NewWebhookNotifier(url, propertyID string, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WebhookNotifier{
		httpClient: client,
		url:        url,
		propertyID: propertyID,
		logger:     logger,
	}
}

// Listener 返回可注册到引擎的监听回调
func (n *WebhookNotifier) Listener() engine.AlertListener {
	return func(alert models.Alert) {
		n.Deliver(alert)
	}
}

// Deliver 投递一条报警
func (n *WebhookNotifier) Deliver(alert models.Alert) {
	delivery := WebhookDelivery{
		DeliveryID: uuid.New().String(),
		PropertyID: n.propertyID,
		Alert:      alert,
		SentAt:     time.Now(),
	}

	resp, err := n.httpClient.R().
		SetBody(delivery).
		Post(n.url)

	if err != nil {
		n.logger.Error("Failed to deliver alert webhook",
			zap.String("alert_id", alert.AlertID),
			zap.String("url", n.url),
			zap.Error(err),
		)
		return
	}

	if resp.IsError() {
		n.logger.Error("Alert webhook returned error status",
			zap.String("alert_id", alert.AlertID),
			zap.String("url", n.url),
			zap.Int("status", resp.StatusCode()),
		)
		return
	}

	n.logger.Info("Delivered alert webhook",
		zap.String("alert_id", alert.AlertID),
		zap.String("delivery_id", delivery.DeliveryID),
		zap.String("severity", string(alert.Severity)),
	)
}

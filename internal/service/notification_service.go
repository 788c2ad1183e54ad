package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/epwerk/field-service/internal/config"
	"github.com/epwerk/field-service/internal/events"
	"github.com/epwerk/field-service/internal/persistence"
)

// NotificationService fans domain events out to subscribers: structured log
// lines always, plus a Redis pub/sub channel when one is configured.
// Delivery is best-effort after commit.
type NotificationService struct {
	dispatcher events.Dispatcher
	redis      *persistence.Redis
	logger     *zap.Logger
	cfg        config.NotificationConfig
	client     *http.Client
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, redis *persistence.Redis, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		redis:      redis,
		logger:     logger,
		cfg:        cfg,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketReceived, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketConverted, n.handleEvent)
	n.dispatcher.Subscribe(events.EventProjectCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventProjectDeleted, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("type", string(event.Type)),
		zap.Any("payload", event.Payload))
	n.publishToRedis(ctx, event)
	n.postToWebhook(ctx, event)
	return nil
}

func (n *NotificationService) postToWebhook(ctx context.Context, event events.Event) {
	if n.cfg.WebhookURL == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("marshal event for webhook", zap.Error(err))
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		n.logger.Warn("build webhook request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("deliver webhook", zap.Error(err))
		return
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.logger.Warn("webhook rejected event", zap.Int("status", resp.StatusCode))
	}
}

func (n *NotificationService) publishToRedis(ctx context.Context, event events.Event) {
	if n.redis == nil || n.cfg.RedisChannel == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("marshal event for redis", zap.Error(err))
		return
	}
	if err := n.redis.Publish(ctx, n.cfg.RedisChannel, payload); err != nil {
		n.logger.Warn("publish event to redis", zap.Error(err))
	}
}

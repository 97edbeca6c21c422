package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-roster/internal/config"
	"github.com/spec-kit/staff-roster/internal/events"
)

// NotificationService emits notifications for roster events. Destructive
// changes additionally go to the webhook stub; everything is logged.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.SubscribeAll(n.handleRosterChanged)
	n.dispatcher.Subscribe(events.EventMemberDeleted, n.handleDestructive)
	n.dispatcher.Subscribe(events.EventHistoryCleared, n.handleDestructive)
	n.dispatcher.Subscribe(events.EventDiscountCancelled, n.handleDestructive)
}

func (n *NotificationService) handleRosterChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("roster event",
		zap.String("type", string(event.Type)),
		zap.String("member_id", event.MemberID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleDestructive(ctx context.Context, event events.Event) error {
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("member_id", event.MemberID),
		zap.String("event_type", string(event.Type)))
}

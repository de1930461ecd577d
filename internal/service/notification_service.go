package service

import (
	"context"
	"encoding/json"
	"fmt"

	mail "github.com/go-mail/mail/v2"
	"go.uber.org/zap"

	"github.com/tasky-suite/workspace-service/internal/config"
	"github.com/tasky-suite/workspace-service/internal/events"
)

// NotificationService reacts to domain events with log lines and, when SMTP
// is configured, outbound mail.
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
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventProjectCreated, n.handleProjectEvent)
	n.dispatcher.Subscribe(events.EventProjectDeleted, n.handleProjectEvent)
	n.dispatcher.Subscribe(events.EventTaskAdded, n.handleProjectEvent)
	n.dispatcher.Subscribe(events.EventTaskStatusChanged, n.handleProjectEvent)
	n.dispatcher.Subscribe(events.EventProjectCompleted, n.handleProjectCompleted)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	n.logger.Info("UserRegistered", zap.String("user_id", payload.UserID), zap.String("email", payload.Email))

	subject := "Welcome to Tasky"
	body := fmt.Sprintf("Hi %s,\n\nYour workspace account is ready.\n", payload.FirstName)
	n.sendMail(payload.Email, subject, body)
	return nil
}

func (n *NotificationService) handleProjectEvent(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleProjectCompleted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ProjectCompletedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ProjectCompleted",
		zap.String("project_id", payload.ProjectID),
		zap.String("name", payload.Name),
		zap.Int("progress", payload.Progress))

	if n.cfg.EmailFrom == "" {
		return nil
	}
	body, _ := json.Marshal(payload)
	n.sendMail(n.cfg.EmailFrom, fmt.Sprintf("Project completed: %s", payload.Name), string(body))
	return nil
}

// sendMail delivers via SMTP when configured; otherwise it logs only, which
// keeps local environments mail-free.
func (n *NotificationService) sendMail(to, subject, body string) {
	if n.cfg.SMTPHost == "" || to == "" {
		n.logger.Debug("mail delivery skipped",
			zap.String("to", to),
			zap.String("subject", subject))
		return
	}

	m := mail.NewMessage()
	m.SetHeader("From", n.cfg.EmailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	dialer := mail.NewDialer(n.cfg.SMTPHost, n.cfg.SMTPPort, n.cfg.SMTPUsername, n.cfg.SMTPPassword)
	if err := dialer.DialAndSend(m); err != nil {
		n.logger.Warn("mail delivery failed", zap.String("to", to), zap.Error(err))
	}
}

package service

import (
	"context"
	"errors"
	"sync"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/scanner/config"
	"golang-signal-scanner/pkg/logger"
	"golang-signal-scanner/pkg/utils"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService is the local notification feed, newest first.
type NotificationService interface {
	Add(ctx context.Context, title, message string, severity entity.Severity) entity.Notification
	List(ctx context.Context) []entity.Notification
	MarkRead(ctx context.Context, id string) error
	Dismiss(ctx context.Context, id string) error
}

// NewNotificationService creates a feed holding at most cfg.Notification.MaxItems entries.
func NewNotificationService(cfg *config.Config, log *logger.Logger, now utils.Clock) NotificationService {
	return &notificationService{
		maxItems: cfg.Notification.MaxItems,
		logger:   log,
		now:      now,
	}
}

type notificationService struct {
	mu       sync.RWMutex
	items    []entity.Notification
	maxItems int
	logger   *logger.Logger
	now      utils.Clock
}

func (s *notificationService) Add(ctx context.Context, title, message string, severity entity.Severity) entity.Notification {
	n := entity.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Timestamp: s.now(),
		Severity:  severity,
	}

	s.mu.Lock()
	s.items = append([]entity.Notification{n}, s.items...)
	if s.maxItems > 0 && len(s.items) > s.maxItems {
		s.items = s.items[:s.maxItems]
	}
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "Notification added", logger.StringField("title", title), logger.StringField("severity", string(severity)))
	return n
}

func (s *notificationService) List(_ context.Context) []entity.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *notificationService) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsRead = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (s *notificationService) Dismiss(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrNotificationNotFound
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/printflow/internal/logging"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
)

var ErrEmptyMessage = errors.New("message text is required")

// ChatService sends and streams chat messages as the current profile.
type ChatService struct {
	backend  repository.Backend
	profiles repository.ProfileRepository
	log      logging.Logger
	now      func() time.Time

	echo *repository.Hub[models.ChatMessage]
}

func NewChatService(backend repository.Backend, profiles repository.ProfileRepository, log logging.Logger) *ChatService {
	return &ChatService{
		backend:  backend,
		profiles: profiles,
		log:      log,
		now:      time.Now,
		echo:     repository.NewHub[models.ChatMessage](),
	}
}

// Subscribe delivers all messages, oldest first, on every change.
func (s *ChatService) Subscribe(ctx context.Context, fn func([]models.ChatMessage)) (repository.Unsubscribe, error) {
	if s.backend.Mode() == repository.ModeLocal {
		return s.echo.Subscribe(func() ([]models.ChatMessage, error) {
			return s.History(ctx)
		}, fn)
	}
	return s.backend.SubscribeChat(ctx, fn)
}

// History returns the current message list.
func (s *ChatService) History(ctx context.Context) ([]models.ChatMessage, error) {
	var (
		first    sync.Once
		messages []models.ChatMessage
	)
	unsubscribe, err := s.backend.SubscribeChat(ctx, func(m []models.ChatMessage) {
		first.Do(func() { messages = m })
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	unsubscribe()

	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return messages, nil
}

// Send posts text as the current profile. The sender's name and role are copied
// into the message and never revalidated.
func (s *ChatService) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	user, err := s.profiles.GetProfile()
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("failed to load profile: %w", err)
	}

	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		UserRole:  user.Role,
		Text:      text,
		Timestamp: s.now().UnixMilli(),
	}
	if err := s.SendMessage(ctx, msg); err != nil {
		return models.ChatMessage{}, err
	}

	return msg, nil
}

// SendMessage appends msg as given.
func (s *ChatService) SendMessage(ctx context.Context, msg models.ChatMessage) error {
	if err := s.backend.SendMessage(ctx, msg); err != nil {
		return err
	}

	if s.backend.Mode() == repository.ModeLocal {
		if err := s.echo.Refresh(func() ([]models.ChatMessage, error) { return s.History(ctx) }); err != nil {
			s.log.Warn(ctx, "failed to refresh chat subscribers", "error", err)
		}
	}
	return nil
}

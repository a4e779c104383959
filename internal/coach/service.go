package coach

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"gorm.io/datatypes"
)

var ErrInvalidInput = errors.New("invalid chat request")

// KeySource yields the user's own AI key, or "" when none is stored.
type KeySource interface {
	AIKey(ctx context.Context, userID uuid.UUID) (string, error)
}

type Service interface {
	Chat(ctx context.Context, userID uuid.UUID, req ChatRequest) (*ChatResponse, error)
	History(ctx context.Context, userID uuid.UUID) (*HistoryResponse, error)
	ClearHistory(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	provider  Provider
	keys      KeySource
	repo      TranscriptRepository
	serverKey string
	now       func() time.Time
}

func NewService(provider Provider, keys KeySource, repo TranscriptRepository, serverKey string) Service {
	return &service{
		provider:  provider,
		keys:      keys,
		repo:      repo,
		serverKey: serverKey,
		now:       time.Now,
	}
}

func (s *service) apiKey(ctx context.Context, userID uuid.UUID) string {
	key, err := s.keys.AIKey(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Could not read user AI key, using server key")
		return s.serverKey
	}
	if key != "" {
		return key
	}
	return s.serverKey
}

// Chat returns one assistant message. Provider failures never reach the
// caller: the reply becomes a fixed apology marked as fallback.
func (s *service) Chat(ctx context.Context, userID uuid.UUID, req ChatRequest) (*ChatResponse, error) {
	log := config.WithContext(ctx)

	history, err := normalize(req.Messages)
	if err != nil {
		return nil, err
	}

	key := s.apiKey(ctx, userID)
	if key == "" {
		log.Warn("No AI key configured for coach")
		return &ChatResponse{Message: Message{Role: RoleAssistant, Content: apology}, Fallback: true}, nil
	}

	text, err := s.provider.Reply(ctx, key, persona, history)
	if err != nil {
		log.WithError(err).Error("Coach provider failed")
		return &ChatResponse{Message: Message{Role: RoleAssistant, Content: apology}, Fallback: true}, nil
	}

	reply := Message{Role: RoleAssistant, Content: text}
	s.record(ctx, userID, append(history, reply))

	return &ChatResponse{Message: reply}, nil
}

func (s *service) record(ctx context.Context, userID uuid.UUID, messages []Message) {
	t := &Transcript{
		UserID:    userID,
		Messages:  datatypes.NewJSONType(keepRecent(messages)),
		UpdatedAt: s.now(),
	}
	if err := s.repo.Save(t); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to save coach transcript")
	}
}

func (s *service) History(ctx context.Context, userID uuid.UUID) (*HistoryResponse, error) {
	t, err := s.repo.Find(userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load coach transcript")
		return nil, err
	}
	if t == nil {
		return &HistoryResponse{Messages: []Message{}}, nil
	}
	updated := t.UpdatedAt
	return &HistoryResponse{Messages: t.Messages.Data(), UpdatedAt: &updated}, nil
}

func (s *service) ClearHistory(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Delete(userID); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to clear coach transcript")
		return err
	}
	return nil
}

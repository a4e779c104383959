package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
	"gorm.io/datatypes"
)

var (
	ErrEntryNotFound = errors.New("journal entry not found")
	ErrInvalidInput  = errors.New("invalid journal entry")
)

type JournalService interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateEntryDTO) (*EntryResponse, error)
	List(ctx context.Context, userID uuid.UUID, from, to string) ([]EntryResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*EntryResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, dto UpdateEntryDTO) (*EntryResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type journalService struct {
	repo  JournalRepository
	today func() util.DateKey
}

func NewService(repo JournalRepository) JournalService {
	return &journalService{repo: repo, today: util.Today}
}

func validMood(m *int) error {
	if m != nil && (*m < MoodMin || *m > MoodMax) {
		return fmt.Errorf("%w: mood must be between %d and %d", ErrInvalidInput, MoodMin, MoodMax)
	}
	return nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *journalService) Create(ctx context.Context, userID uuid.UUID, dto CreateEntryDTO) (*EntryResponse, error) {
	date := s.today()
	if dto.Date != "" {
		parsed, err := util.ParseDateKey(dto.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}
	if err := validMood(dto.Mood); err != nil {
		return nil, err
	}
	if strings.TrimSpace(dto.Title) == "" && strings.TrimSpace(dto.Content) == "" {
		return nil, fmt.Errorf("%w: title or content is required", ErrInvalidInput)
	}

	now := time.Now()
	e := &Entry{
		ID:        uuid.New(),
		Date:      date.String(),
		Title:     strings.TrimSpace(dto.Title),
		Content:   dto.Content,
		Mood:      dto.Mood,
		Gratitude: datatypes.NewJSONType(cleanList(dto.Gratitude)),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(e); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to create journal entry")
		return nil, util.NewWriteError("create journal entry", err)
	}

	resp := toResponse(e)
	return &resp, nil
}

func (s *journalService) List(ctx context.Context, userID uuid.UUID, from, to string) ([]EntryResponse, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := util.ParseDateKey(d); err != nil {
			return nil, err
		}
	}

	entries, err := s.repo.ListByUser(userID, from, to)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list journal entries")
		return nil, err
	}
	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toResponse(&entries[i]))
	}
	return out, nil
}

func (s *journalService) find(userID, id uuid.UUID) (*Entry, error) {
	e, err := s.repo.FindByIDAndUserID(id, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	return e, err
}

func (s *journalService) Get(ctx context.Context, userID, id uuid.UUID) (*EntryResponse, error) {
	e, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(e)
	return &resp, nil
}

func (s *journalService) Update(ctx context.Context, userID, id uuid.UUID, dto UpdateEntryDTO) (*EntryResponse, error) {
	e, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}

	if dto.Date != nil {
		parsed, err := util.ParseDateKey(*dto.Date)
		if err != nil {
			return nil, err
		}
		e.Date = parsed.String()
	}
	if dto.Title != nil {
		e.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Content != nil {
		e.Content = *dto.Content
	}
	if dto.ClearMood {
		e.Mood = nil
	} else if dto.Mood != nil {
		if err := validMood(dto.Mood); err != nil {
			return nil, err
		}
		e.Mood = dto.Mood
	}
	if dto.Gratitude != nil {
		e.Gratitude = datatypes.NewJSONType(cleanList(*dto.Gratitude))
	}

	e.UpdatedAt = time.Now()
	if err := s.repo.Update(e); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to update journal entry")
		return nil, util.NewWriteError("update journal entry", err)
	}

	resp := toResponse(e)
	return &resp, nil
}

func (s *journalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrEntryNotFound
		}
		config.WithContext(ctx).WithError(err).Error("Failed to delete journal entry")
		return util.NewWriteError("delete journal entry", err)
	}
	return nil
}

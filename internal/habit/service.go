package habit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/leveling"
	"github.com/saulo-duarte/ascend-lambda/internal/profile"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
	"github.com/sirupsen/logrus"
)

// HabitCompletionXP is credited the first time a habit is completed for a date.
const HabitCompletionXP = 10

// DefaultHistoryDays is the history window when no range is given.
const DefaultHistoryDays = 30

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrInvalidInput  = errors.New("invalid habit")
)

type XPAwarder interface {
	AwardXP(ctx context.Context, userID uuid.UUID, amount int, attribute *profile.Attribute) (*leveling.Result, error)
}

type HabitService interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateHabitDTO) (*HabitResponse, error)
	List(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]HabitResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, dto UpdateHabitDTO) (*HabitResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Toggle(ctx context.Context, userID, id uuid.UUID, date string) (*ToggleResponse, error)
	History(ctx context.Context, userID, id uuid.UUID, from, to string) ([]CompletionResponse, error)
}

type habitService struct {
	repo  HabitRepository
	xp    XPAwarder
	today func() util.DateKey
}

func NewService(repo HabitRepository, xp XPAwarder) HabitService {
	return &habitService{repo: repo, xp: xp, today: util.Today}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validate(h *Habit) error {
	if strings.TrimSpace(h.Name) == "" {
		return invalid("name is required")
	}
	if h.TimesPerWeek < 1 || h.TimesPerWeek > 7 {
		return invalid("times_per_week must be between 1 and 7")
	}
	if !h.PreferredTime.IsValid() {
		return invalid("unknown preferred_time %q", h.PreferredTime)
	}
	if !h.Kind.IsValid() {
		return invalid("unknown kind %q", h.Kind)
	}
	return nil
}

func (s *habitService) find(userID, id uuid.UUID) (*Habit, error) {
	h, err := s.repo.FindByIDAndUserID(id, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrHabitNotFound
	}
	return h, err
}

func (s *habitService) completedToday(userID, id uuid.UUID) bool {
	done, err := s.repo.CompletedOn(userID, s.today().String())
	if err != nil {
		return false
	}
	return done[id]
}

func (s *habitService) Create(ctx context.Context, userID uuid.UUID, dto CreateHabitDTO) (*HabitResponse, error) {
	log := config.WithContext(ctx)

	attr, err := profile.ParseAttribute(dto.Attribute)
	if err != nil {
		return nil, invalid("%v", err)
	}

	now := time.Now()
	h := &Habit{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(dto.Name),
		Icon:          dto.Icon,
		Color:         dto.Color,
		TimesPerWeek:  dto.TimesPerWeek,
		PreferredTime: dto.PreferredTime,
		Kind:          dto.Kind,
		Attribute:     attr,
		Active:        true,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if h.TimesPerWeek == 0 {
		h.TimesPerWeek = 7
	}
	if h.PreferredTime == "" {
		h.PreferredTime = TimeAny
	}
	if h.Kind == "" {
		h.Kind = KindGood
	}
	if err := validate(h); err != nil {
		return nil, err
	}

	if err := s.repo.Create(h); err != nil {
		log.WithError(err).Error("Failed to create habit")
		return nil, util.NewWriteError("create habit", err)
	}

	log.WithField("habit_id", h.ID).Info("Habit created successfully")
	resp := toResponse(h, false)
	return &resp, nil
}

func (s *habitService) List(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]HabitResponse, error) {
	log := config.WithContext(ctx)

	habits, err := s.repo.ListByUser(userID, !includeInactive)
	if err != nil {
		log.WithError(err).Error("Failed to list habits")
		return nil, err
	}
	done, err := s.repo.CompletedOn(userID, s.today().String())
	if err != nil {
		log.WithError(err).Error("Failed to load today's completions")
		return nil, err
	}

	out := make([]HabitResponse, 0, len(habits))
	for i := range habits {
		out = append(out, toResponse(&habits[i], done[habits[i].ID]))
	}
	return out, nil
}

func (s *habitService) Update(ctx context.Context, userID, id uuid.UUID, dto UpdateHabitDTO) (*HabitResponse, error) {
	log := config.WithContext(ctx)

	h, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		h.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Icon != nil {
		h.Icon = *dto.Icon
	}
	if dto.Color != nil {
		h.Color = *dto.Color
	}
	if dto.TimesPerWeek != nil {
		h.TimesPerWeek = *dto.TimesPerWeek
	}
	if dto.PreferredTime != nil {
		h.PreferredTime = *dto.PreferredTime
	}
	if dto.Kind != nil {
		h.Kind = *dto.Kind
	}
	if dto.Attribute != nil {
		attr, err := profile.ParseAttribute(*dto.Attribute)
		if err != nil {
			return nil, invalid("%v", err)
		}
		h.Attribute = attr
	}
	if dto.Active != nil {
		h.Active = *dto.Active
	}
	if err := validate(h); err != nil {
		return nil, err
	}

	h.UpdatedAt = time.Now()
	if err := s.repo.Update(h); err != nil {
		log.WithError(err).Error("Failed to update habit")
		return nil, util.NewWriteError("update habit", err)
	}

	resp := toResponse(h, s.completedToday(userID, id))
	return &resp, nil
}

func (s *habitService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.SoftDelete(id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrHabitNotFound
		}
		config.WithContext(ctx).WithError(err).Error("Failed to delete habit")
		return util.NewWriteError("delete habit", err)
	}
	config.WithContext(ctx).WithField("habit_id", id).Info("Habit deleted")
	return nil
}

// Toggle flips the completion for date (today when empty) and moves the streak
// counter by one. Adjacency of dates is not checked.
func (s *habitService) Toggle(ctx context.Context, userID, id uuid.UUID, date string) (*ToggleResponse, error) {
	log := config.WithContext(ctx)

	key := s.today()
	if date != "" {
		parsed, err := util.ParseDateKey(date)
		if err != nil {
			return nil, err
		}
		key = parsed
	}

	award := false
	h, c, err := s.repo.Toggle(id, userID, key.String(), func(h *Habit, c *HabitCompletion) error {
		if !h.Active {
			return invalid("habit is inactive")
		}
		c.Done = !c.Done
		h.SetCounter(h.Counter().Apply(c.Done))
		h.UpdatedAt = time.Now()
		if c.Done && !c.XPAwarded {
			c.XPAwarded = true
			award = true
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		log.WithError(err).WithField("habit_id", id).Error("Failed to toggle habit")
		return nil, util.NewWriteError("toggle habit", err)
	}

	completedToday := c.Done
	if key != s.today() {
		completedToday = s.completedToday(userID, id)
	}
	resp := &ToggleResponse{
		Habit: toResponse(h, completedToday),
		Date:  key.String(),
		Done:  c.Done,
	}

	if award {
		res, err := s.xp.AwardXP(ctx, userID, HabitCompletionXP, h.Attribute)
		if err != nil {
			log.WithError(err).WithField("habit_id", id).Error("Failed to award habit xp")
		} else {
			resp.XP = res
		}
	}

	log.WithFields(logrus.Fields{
		"habit_id": id,
		"date":     key,
		"done":     c.Done,
		"streak":   h.CurrentStreak,
	}).Info("Habit toggled")
	return resp, nil
}

func (s *habitService) History(ctx context.Context, userID, id uuid.UUID, from, to string) ([]CompletionResponse, error) {
	if _, err := s.find(userID, id); err != nil {
		return nil, err
	}

	end := s.today()
	if to != "" {
		parsed, err := util.ParseDateKey(to)
		if err != nil {
			return nil, err
		}
		end = parsed
	}
	start := end.AddDays(-(DefaultHistoryDays - 1))
	if from != "" {
		parsed, err := util.ParseDateKey(from)
		if err != nil {
			return nil, err
		}
		start = parsed
	}
	if start > end {
		return nil, invalid("from must not be after to")
	}

	rows, err := s.repo.History(id, start.String(), end.String())
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load habit history")
		return nil, err
	}
	out := make([]CompletionResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, CompletionResponse{Date: c.Date, Done: c.Done})
	}
	return out, nil
}

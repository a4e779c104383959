package habit

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/leveling"
	"github.com/saulo-duarte/ascend-lambda/internal/profile"
)

type CreateHabitDTO struct {
	Name          string        `json:"name"`
	Icon          string        `json:"icon"`
	Color         string        `json:"color"`
	TimesPerWeek  int           `json:"times_per_week"`
	PreferredTime PreferredTime `json:"preferred_time"`
	Kind          HabitKind     `json:"kind"`
	Attribute     string        `json:"attribute"`
}

type UpdateHabitDTO struct {
	Name          *string        `json:"name"`
	Icon          *string        `json:"icon"`
	Color         *string        `json:"color"`
	TimesPerWeek  *int           `json:"times_per_week"`
	PreferredTime *PreferredTime `json:"preferred_time"`
	Kind          *HabitKind     `json:"kind"`
	Attribute     *string        `json:"attribute"`
	Active        *bool          `json:"active"`
}

type ToggleDTO struct {
	Date string `json:"date"`
}

type HabitResponse struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Icon           string             `json:"icon,omitempty"`
	Color          string             `json:"color,omitempty"`
	TimesPerWeek   int                `json:"times_per_week"`
	PreferredTime  PreferredTime      `json:"preferred_time"`
	Kind           HabitKind          `json:"kind"`
	Attribute      *profile.Attribute `json:"attribute,omitempty"`
	CurrentStreak  int                `json:"current_streak"`
	RecordStreak   int                `json:"record_streak"`
	Active         bool               `json:"active"`
	CompletedToday bool               `json:"completed_today"`
	CreatedAt      time.Time          `json:"created_at"`
}

type ToggleResponse struct {
	Habit HabitResponse    `json:"habit"`
	Date  string           `json:"date"`
	Done  bool             `json:"done"`
	XP    *leveling.Result `json:"xp,omitempty"`
}

type CompletionResponse struct {
	Date string `json:"date"`
	Done bool   `json:"done"`
}

func toResponse(h *Habit, completedToday bool) HabitResponse {
	return HabitResponse{
		ID:             h.ID,
		Name:           h.Name,
		Icon:           h.Icon,
		Color:          h.Color,
		TimesPerWeek:   h.TimesPerWeek,
		PreferredTime:  h.PreferredTime,
		Kind:           h.Kind,
		Attribute:      h.Attribute,
		CurrentStreak:  h.CurrentStreak,
		RecordStreak:   h.RecordStreak,
		Active:         h.Active,
		CompletedToday: completedToday,
		CreatedAt:      h.CreatedAt,
	}
}

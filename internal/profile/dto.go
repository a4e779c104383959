package profile

import (
	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/leveling"
)

type UpdateReflectionDTO struct {
	DisplayName *string `json:"display_name"`
	Purpose     *string `json:"purpose"`
	Vision      *string `json:"vision"`
	CoreValues  *string `json:"core_values"`
}

type AddXPDTO struct {
	Amount int `json:"amount"`
}

type SpendCoinsDTO struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

type SetAIKeyDTO struct {
	APIKey string `json:"api_key"`
}

type ProfileResponse struct {
	UserID        uuid.UUID  `json:"user_id"`
	DisplayName   string     `json:"display_name"`
	Purpose       string     `json:"purpose"`
	Vision        string     `json:"vision"`
	CoreValues    string     `json:"core_values"`
	Level         int        `json:"level"`
	XP            int        `json:"xp"`
	XPToNextLevel int        `json:"xp_to_next_level"`
	LevelProgress float64    `json:"level_progress"`
	Coins         int        `json:"coins"`
	Attributes    Attributes `json:"attributes"`
	Checklist     Checklist  `json:"checklist"`
	ChecklistDate string     `json:"checklist_date"`
	Equalizer     Equalizer  `json:"equalizer"`
	HasAIKey      bool       `json:"has_ai_key"`
}

type XPResponse struct {
	leveling.Result
	LevelProgress float64 `json:"level_progress"`
}

// SpendResult is returned for both accepted and declined spends.
type SpendResult struct {
	Declined bool `json:"declined"`
	Spent    int  `json:"spent"`
	Coins    int  `json:"coins"`
}

package coach

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript keeps the most recent exchange per user.
type Transcript struct {
	UserID    uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"user_id"`
	User      user.User                     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Messages  datatypes.JSONType[[]Message] `json:"messages"`
	UpdatedAt time.Time                     `json:"updated_at"`
}

func (Transcript) TableName() string {
	return "coach_transcripts"
}

type ChatRequest struct {
	Messages []Message `json:"messages"`
}

type ChatResponse struct {
	Message  Message `json:"message"`
	Fallback bool    `json:"fallback"`
}

type HistoryResponse struct {
	Messages  []Message  `json:"messages"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

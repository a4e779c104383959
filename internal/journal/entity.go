package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
	"gorm.io/datatypes"
)

const (
	MoodMin = 1
	MoodMax = 5
)

type Entry struct {
	ID        uuid.UUID                    `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	Date      string                       `gorm:"type:varchar(10);index:idx_journal_user_date;not null" json:"date"`
	Title     string                       `json:"title"`
	Content   string                       `gorm:"type:text" json:"content"`
	Mood      *int                         `json:"mood,omitempty"`
	Gratitude datatypes.JSONType[[]string] `json:"gratitude"`
	UserID    uuid.UUID                    `gorm:"column:user_id;index:idx_journal_user_date;not null" json:"user_id"`
	User      user.User                    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time                    `json:"created_at"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

func (Entry) TableName() string {
	return "journal_entries"
}

package pillar

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/progress"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
)

// ProsperityPillar holds the self-assessed today/desired values of one pillar.
type ProsperityPillar struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID       `gorm:"column:user_id;not null;uniqueIndex:idx_user_pillar" json:"user_id"`
	User      user.User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Pillar    progress.Pillar `gorm:"type:varchar(40);not null;uniqueIndex:idx_user_pillar" json:"pillar"`
	Today     int             `gorm:"not null" json:"today"`
	Desired   int             `gorm:"not null" json:"desired"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

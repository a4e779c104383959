package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/leveling"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
	"gorm.io/datatypes"
)

type Profile struct {
	ID             uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID                      `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User           user.User                      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DisplayName    string                         `json:"display_name"`
	Purpose        string                         `gorm:"type:text" json:"purpose"`
	Vision         string                         `gorm:"type:text" json:"vision"`
	CoreValues     string                         `gorm:"type:text" json:"core_values"`
	Level          int                            `gorm:"not null;default:1" json:"level"`
	XP             int                            `gorm:"not null;default:0" json:"xp"`
	Coins          int                            `gorm:"not null;default:0" json:"coins"`
	Attributes     datatypes.JSONType[Attributes] `gorm:"type:jsonb" json:"attributes"`
	Checklist      datatypes.JSONType[Checklist]  `gorm:"type:jsonb" json:"checklist"`
	ChecklistDate  string                         `json:"checklist_date"`
	Equalizer      datatypes.JSONType[Equalizer]  `gorm:"type:jsonb" json:"equalizer"`
	EncryptedAIKey string                         `json:"-"`
	CreatedAt      time.Time                      `json:"created_at"`
	UpdatedAt      time.Time                      `json:"updated_at"`
}

func (p *Profile) State() leveling.State {
	return leveling.State{Level: p.Level, XP: p.XP, Coins: p.Coins}
}

func (p *Profile) SetState(s leveling.State) {
	p.Level, p.XP, p.Coins = s.Level, s.XP, s.Coins
}

package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                        string    `json:"name"`
	Email                       string    `gorm:"uniqueIndex;not null" json:"email"`
	PictureURL                  string    `json:"picture_url,omitempty"`
	PasswordHash                string    `json:"-"`
	GoogleID                    *string   `gorm:"uniqueIndex" json:"-"`
	EncryptedGoogleAccessToken  string    `json:"-"`
	EncryptedGoogleRefreshToken string    `json:"-"`
	Role                        string    `gorm:"not null;default:user" json:"role"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
)

type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	Kind        Kind      `gorm:"type:varchar(10);not null" json:"kind"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Category    string    `gorm:"type:varchar(64);not null" json:"category"`
	Description string    `json:"description"`
	Date        string    `gorm:"type:varchar(10);index:idx_finance_user_date;not null" json:"date"`
	UserID      uuid.UUID `gorm:"column:user_id;index:idx_finance_user_date;not null" json:"user_id"`
	User        user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Transaction) TableName() string {
	return "finance_transactions"
}

package coach

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TranscriptRepository interface {
	Find(userID uuid.UUID) (*Transcript, error)
	Save(t *Transcript) error
	Delete(userID uuid.UUID) error
}

type transcriptRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TranscriptRepository {
	return &transcriptRepository{db: db}
}

// Find returns nil without error when the user has no transcript yet.
func (r *transcriptRepository) Find(userID uuid.UUID) (*Transcript, error) {
	var t Transcript
	err := r.db.Where("user_id = ?", userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transcriptRepository) Save(t *Transcript) error {
	return r.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"messages", "updated_at"}),
	}).Create(t).Error
}

func (r *transcriptRepository) Delete(userID uuid.UUID) error {
	return r.db.Where("user_id = ?", userID).Delete(&Transcript{}).Error
}

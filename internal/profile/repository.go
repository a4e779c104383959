package profile

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	Create(p *Profile) error
	FindByUserID(userID uuid.UUID) (*Profile, error)
	// Mutate loads the profile row locked for update, applies fn and saves it in
	// one transaction. fn returning an error aborts without writing.
	Mutate(userID uuid.UUID, fn func(p *Profile) error) (*Profile, error)
	// DebitCoins subtracts amount only when the balance covers it and reports
	// whether the debit happened.
	DebitCoins(userID uuid.UUID, amount int) (bool, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(p *Profile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(p).Error
}

func (r *profileRepository) FindByUserID(userID uuid.UUID) (*Profile, error) {
	var p Profile
	if err := r.db.First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Mutate(userID uuid.UUID, fn func(p *Profile) error) (*Profile, error) {
	var p Profile
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return err
		}
		if err := fn(&p); err != nil {
			return err
		}
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) DebitCoins(userID uuid.UUID, amount int) (bool, error) {
	res := r.db.Model(&Profile{}).
		Where("user_id = ? AND coins >= ?", userID, amount).
		UpdateColumn("coins", gorm.Expr("coins - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

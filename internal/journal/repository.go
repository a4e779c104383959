package journal

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type JournalRepository interface {
	Create(e *Entry) error
	FindByIDAndUserID(id, userID uuid.UUID) (*Entry, error)
	ListByUser(userID uuid.UUID, from, to string) ([]Entry, error)
	Update(e *Entry) error
	Delete(id, userID uuid.UUID) error
}

type journalRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Create(e *Entry) error {
	return r.db.Create(e).Error
}

func (r *journalRepository) FindByIDAndUserID(id, userID uuid.UUID) (*Entry, error) {
	var e Entry
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *journalRepository) ListByUser(userID uuid.UUID, from, to string) ([]Entry, error) {
	var entries []Entry
	q := r.db.Where("user_id = ?", userID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	err := q.Order("date DESC, created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *journalRepository) Update(e *Entry) error {
	return r.db.Save(e).Error
}

func (r *journalRepository) Delete(id, userID uuid.UUID) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

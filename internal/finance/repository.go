package finance

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type FinanceRepository interface {
	Create(t *Transaction) error
	FindByIDAndUserID(id, userID uuid.UUID) (*Transaction, error)
	ListByUser(userID uuid.UUID, filter ListFilter) ([]Transaction, error)
	Update(t *Transaction) error
	Delete(id, userID uuid.UUID) error
}

type financeRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) Create(t *Transaction) error {
	return r.db.Create(t).Error
}

func (r *financeRepository) FindByIDAndUserID(id, userID uuid.UUID) (*Transaction, error) {
	var t Transaction
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *financeRepository) ListByUser(userID uuid.UUID, filter ListFilter) ([]Transaction, error) {
	var txs []Transaction
	q := r.db.Where("user_id = ?", userID)
	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date <= ?", filter.To)
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	err := q.Order("date DESC, created_at DESC").Find(&txs).Error
	return txs, err
}

func (r *financeRepository) Update(t *Transaction) error {
	return r.db.Save(t).Error
}

func (r *financeRepository) Delete(id, userID uuid.UUID) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

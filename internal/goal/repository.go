package goal

import (
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/kanban"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type GoalRepository interface {
	Create(g *Goal) error
	FindByIDAndUserID(id, userID uuid.UUID) (*Goal, error)
	ListByUser(userID uuid.UUID) ([]Goal, error)
	ListByStatus(userID uuid.UUID, status GoalStatus) ([]Goal, error)
	Update(g *Goal) error
	Delete(id, userID uuid.UUID) error
	// ApplyOrder writes every change of one move in a single transaction.
	ApplyOrder(userID uuid.UUID, changes []kanban.Change) error
}

type goalRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(g *Goal) error {
	return r.db.Create(g).Error
}

func (r *goalRepository) FindByIDAndUserID(id, userID uuid.UUID) (*Goal, error) {
	var g Goal
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &g, err
}

func (r *goalRepository) ListByUser(userID uuid.UUID) ([]Goal, error) {
	var goals []Goal
	err := r.db.Where("user_id = ?", userID).
		Order("status, sort_order, created_at").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepository) ListByStatus(userID uuid.UUID, status GoalStatus) ([]Goal, error) {
	var goals []Goal
	err := r.db.Where("user_id = ? AND status = ?", userID, status).
		Order("sort_order, created_at").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepository) Update(g *Goal) error {
	return r.db.Save(g).Error
}

func (r *goalRepository) Delete(id, userID uuid.UUID) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&Goal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *goalRepository) ApplyOrder(userID uuid.UUID, changes []kanban.Change) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, c := range changes {
			if err := tx.Model(&Goal{}).
				Where("id = ? AND user_id = ?", c.ID, userID).
				UpdateColumn("sort_order", c.Order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

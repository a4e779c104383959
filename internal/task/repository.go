package task

import (
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/kanban"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type TaskRepository interface {
	Create(t *Task) error
	FindByIdAndUserId(id, userID uuid.UUID) (*Task, error)
	ListByUser(userID uuid.UUID, filter ListFilter) ([]*Task, error)
	ListByStatus(userID uuid.UUID, status TaskStatus) ([]*Task, error)
	Update(t *Task) error
	Delete(id, userID uuid.UUID) error
	ApplyOrder(userID uuid.UUID, changes []kanban.Change) error
	AddMinutes(id, userID uuid.UUID, minutes int) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(t *Task) error {
	return r.db.Create(t).Error
}

func (r *taskRepository) FindByIdAndUserId(id, userID uuid.UUID) (*Task, error) {
	var t Task
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) ListByUser(userID uuid.UUID, filter ListFilter) ([]*Task, error) {
	var tasks []*Task
	q := r.db.Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.GoalID != nil {
		q = q.Where("goal_id = ?", *filter.GoalID)
	}
	err := q.Order("status, sort_order, created_at").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) ListByStatus(userID uuid.UUID, status TaskStatus) ([]*Task, error) {
	var tasks []*Task
	err := r.db.Where("user_id = ? AND status = ?", userID, status).
		Order("sort_order, created_at").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(t *Task) error {
	return r.db.Save(t).Error
}

func (r *taskRepository) Delete(id, userID uuid.UUID) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) ApplyOrder(userID uuid.UUID, changes []kanban.Change) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, c := range changes {
			if err := tx.Model(&Task{}).
				Where("id = ? AND user_id = ?", c.ID, userID).
				UpdateColumn("sort_order", c.Order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *taskRepository) AddMinutes(id, userID uuid.UUID, minutes int) error {
	res := r.db.Model(&Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("minutes_spent", gorm.Expr("minutes_spent + ?", minutes))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

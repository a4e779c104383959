package habit

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

type HabitRepository interface {
	Create(h *Habit) error
	FindByIDAndUserID(id, userID uuid.UUID) (*Habit, error)
	ListByUser(userID uuid.UUID, activeOnly bool) ([]Habit, error)
	Update(h *Habit) error
	// SoftDelete marks the habit deleted and inactive; completions are kept.
	// Deleted habits are excluded from every query, ListByUser included.
	SoftDelete(id, userID uuid.UUID) error
	CompletedOn(userID uuid.UUID, date string) (map[uuid.UUID]bool, error)
	History(habitID uuid.UUID, from, to string) ([]HabitCompletion, error)
	ListCompletions(userID uuid.UUID) ([]HabitCompletion, error)
	// Toggle locks the habit, loads or initialises the completion for date,
	// lets fn mutate both and writes them in one transaction.
	Toggle(id, userID uuid.UUID, date string, fn func(h *Habit, c *HabitCompletion) error) (*Habit, *HabitCompletion, error)
}

type habitRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(h *Habit) error {
	return r.db.Create(h).Error
}

func (r *habitRepository) FindByIDAndUserID(id, userID uuid.UUID) (*Habit, error) {
	var h Habit
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &h, err
}

func (r *habitRepository) ListByUser(userID uuid.UUID, activeOnly bool) ([]Habit, error) {
	var habits []Habit
	q := r.db.Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("created_at").Find(&habits).Error
	return habits, err
}

func (r *habitRepository) Update(h *Habit) error {
	return r.db.Save(h).Error
}

func (r *habitRepository) SoftDelete(id, userID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Habit{}).
			Where("id = ? AND user_id = ?", id, userID).
			UpdateColumn("active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&Habit{}).Error
	})
}

func (r *habitRepository) CompletedOn(userID uuid.UUID, date string) (map[uuid.UUID]bool, error) {
	var rows []HabitCompletion
	if err := r.db.Where("user_id = ? AND date = ? AND done = ?", userID, date, true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(rows))
	for _, c := range rows {
		out[c.HabitID] = true
	}
	return out, nil
}

func (r *habitRepository) History(habitID uuid.UUID, from, to string) ([]HabitCompletion, error) {
	var rows []HabitCompletion
	err := r.db.Where("habit_id = ? AND date BETWEEN ? AND ?", habitID, from, to).
		Order("date").
		Find(&rows).Error
	return rows, err
}

func (r *habitRepository) ListCompletions(userID uuid.UUID) ([]HabitCompletion, error) {
	var rows []HabitCompletion
	err := r.db.Where("user_id = ?", userID).Order("date").Find(&rows).Error
	return rows, err
}

func (r *habitRepository) Toggle(id, userID uuid.UUID, date string, fn func(h *Habit, c *HabitCompletion) error) (*Habit, *HabitCompletion, error) {
	var h Habit
	var c HabitCompletion
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).
			First(&h).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		err := tx.Where("habit_id = ? AND date = ?", id, date).First(&c).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c = HabitCompletion{ID: uuid.New(), HabitID: id, Date: date, UserID: userID, CreatedAt: time.Now()}
		case err != nil:
			return err
		}

		if err := fn(&h, &c); err != nil {
			return err
		}

		c.UpdatedAt = time.Now()
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"done", "xp_awarded", "updated_at"}),
		}).Create(&c).Error; err != nil {
			return err
		}
		return tx.Save(&h).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &h, &c, nil
}

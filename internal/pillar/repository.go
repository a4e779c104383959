package pillar

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PillarRepository interface {
	ListByUser(userID uuid.UUID) ([]ProsperityPillar, error)
	// Upsert writes the row keyed by (user_id, pillar).
	Upsert(p *ProsperityPillar) error
}

type pillarRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) PillarRepository {
	return &pillarRepository{db: db}
}

func (r *pillarRepository) ListByUser(userID uuid.UUID) ([]ProsperityPillar, error) {
	var rows []ProsperityPillar
	err := r.db.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (r *pillarRepository) Upsert(p *ProsperityPillar) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "pillar"}},
		DoUpdates: clause.AssignmentColumns([]string{"today", "desired", "note", "updated_at"}),
	}).Create(p).Error
}

package pillar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/progress"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownPillar = errors.New("unknown pillar")
	ErrOutOfRange    = fmt.Errorf("pillar values must be between %d and %d", progress.ScaleMin, progress.ScaleMax)
)

// GoalSource lists a user's goals tagged with their pillar.
type GoalSource interface {
	PillarGoals(ctx context.Context, userID uuid.UUID) ([]progress.PillarGoal, error)
}

type PillarService interface {
	Overview(ctx context.Context, userID uuid.UUID) (*OverviewResponse, error)
	Upsert(ctx context.Context, userID uuid.UUID, pillar progress.Pillar, dto UpsertPillarDTO) (*PillarResponse, error)
}

type pillarService struct {
	repo  PillarRepository
	goals GoalSource
}

func NewService(repo PillarRepository, goals GoalSource) PillarService {
	return &pillarService{repo: repo, goals: goals}
}

func inScale(v int) bool {
	return v >= progress.ScaleMin && v <= progress.ScaleMax
}

func (s *pillarService) Overview(ctx context.Context, userID uuid.UUID) (*OverviewResponse, error) {
	log := config.WithContext(ctx)

	rows, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list pillars")
		return nil, err
	}
	goals, err := s.goals.PillarGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	byPillar := make(map[progress.Pillar]ProsperityPillar, len(rows))
	for _, row := range rows {
		byPillar[row.Pillar] = row
	}
	inputs := make(map[progress.Pillar][]progress.Input)
	for _, g := range goals {
		inputs[g.Pillar] = append(inputs[g.Pillar], g.Input)
	}

	resp := &OverviewResponse{Pillars: make([]PillarResponse, 0, len(progress.AllPillars))}
	scores := make([]progress.PillarScore, 0, len(progress.AllPillars))
	for _, p := range progress.AllPillars {
		item := PillarResponse{
			Pillar:    p,
			Today:     progress.DefaultPillarPercent,
			Desired:   progress.DefaultPillarPercent,
			GoalCount: len(inputs[p]),
		}
		var manual *float64
		if row, ok := byPillar[p]; ok {
			item.Today, item.Desired, item.Note = row.Today, row.Desired, row.Note
			item.Configured = true
			today := float64(row.Today)
			manual = &today
		}
		item.Percent = progress.PillarPercent(inputs[p], manual)

		score := progress.PillarScore{Pillar: p, Today: item.Today, Desired: item.Desired}
		item.Gap = score.Gap()
		scores = append(scores, score)
		resp.Pillars = append(resp.Pillars, item)
	}

	if critical, ok := progress.CriticalArea(scores); ok {
		for i := range resp.Pillars {
			if resp.Pillars[i].Pillar == critical.Pillar {
				resp.CriticalArea = &resp.Pillars[i]
				break
			}
		}
	}
	return resp, nil
}

func (s *pillarService) Upsert(ctx context.Context, userID uuid.UUID, pillar progress.Pillar, dto UpsertPillarDTO) (*PillarResponse, error) {
	log := config.WithContext(ctx)
	if !pillar.IsValid() {
		return nil, ErrUnknownPillar
	}
	if (dto.Today != nil && !inScale(*dto.Today)) || (dto.Desired != nil && !inScale(*dto.Desired)) {
		return nil, ErrOutOfRange
	}

	rows, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list pillars")
		return nil, err
	}

	now := time.Now()
	row := ProsperityPillar{
		ID:        uuid.New(),
		UserID:    userID,
		Pillar:    pillar,
		Today:     progress.DefaultPillarPercent,
		Desired:   progress.DefaultPillarPercent,
		CreatedAt: now,
	}
	for _, existing := range rows {
		if existing.Pillar == pillar {
			row = existing
			break
		}
	}
	if dto.Today != nil {
		row.Today = *dto.Today
	}
	if dto.Desired != nil {
		row.Desired = *dto.Desired
	}
	if dto.Note != nil {
		row.Note = *dto.Note
	}
	row.UpdatedAt = now

	if err := s.repo.Upsert(&row); err != nil {
		log.WithError(err).Error("Failed to save pillar")
		return nil, util.NewWriteError("save pillar", err)
	}

	log.WithFields(logrus.Fields{
		"pillar":  pillar,
		"today":   row.Today,
		"desired": row.Desired,
	}).Info("Pillar saved")

	return &PillarResponse{
		Pillar:     row.Pillar,
		Today:      row.Today,
		Desired:    row.Desired,
		Gap:        row.Desired - row.Today,
		Note:       row.Note,
		Configured: true,
	}, nil
}

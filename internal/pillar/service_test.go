package pillar

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	rows map[progress.Pillar]ProsperityPillar
}

func (r *fakeRepo) ListByUser(userID uuid.UUID) ([]ProsperityPillar, error) {
	var out []ProsperityPillar
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeRepo) Upsert(p *ProsperityPillar) error {
	if existing, ok := r.rows[p.Pillar]; ok {
		p.ID = existing.ID
	}
	r.rows[p.Pillar] = *p
	return nil
}

type fakeGoals []progress.PillarGoal

func (f fakeGoals) PillarGoals(context.Context, uuid.UUID) ([]progress.PillarGoal, error) {
	return f, nil
}

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestUpsertValidation(t *testing.T) {
	svc := NewService(&fakeRepo{rows: map[progress.Pillar]ProsperityPillar{}}, fakeGoals{})
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Upsert(ctx, userID, "spiritual", UpsertPillarDTO{Today: i(10)})
	assert.ErrorIs(t, err, ErrUnknownPillar)

	_, err = svc.Upsert(ctx, userID, progress.PillarHealth, UpsertPillarDTO{Today: i(101)})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = svc.Upsert(ctx, userID, progress.PillarHealth, UpsertPillarDTO{Desired: i(-1)})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestUpsertIsPartialAndKeyedByPillar(t *testing.T) {
	repo := &fakeRepo{rows: map[progress.Pillar]ProsperityPillar{}}
	svc := NewService(repo, fakeGoals{})
	ctx := context.Background()
	userID := uuid.New()

	first, err := svc.Upsert(ctx, userID, progress.PillarHealth, UpsertPillarDTO{Today: i(30), Desired: i(90)})
	require.NoError(t, err)
	assert.Equal(t, 60, first.Gap)

	second, err := svc.Upsert(ctx, userID, progress.PillarHealth, UpsertPillarDTO{Today: i(70)})
	require.NoError(t, err)
	assert.Equal(t, 70, second.Today)
	assert.Equal(t, 90, second.Desired)
	assert.Len(t, repo.rows, 1)
}

func TestOverview(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{rows: map[progress.Pillar]ProsperityPillar{
		progress.PillarEmotional:   {UserID: userID, Pillar: progress.PillarEmotional, Today: 20, Desired: 80},
		progress.PillarRelational:  {UserID: userID, Pillar: progress.PillarRelational, Today: 10, Desired: 70},
		progress.PillarEnvironment: {UserID: userID, Pillar: progress.PillarEnvironment, Today: 35, Desired: 40},
	}}
	goals := fakeGoals{
		{Pillar: progress.PillarFinancial, Input: progress.Input{Target: f(200), Actual: f(50)}},
		{Pillar: progress.PillarFinancial, Input: progress.Input{Done: true}},
	}
	svc := NewService(repo, goals)

	resp, err := svc.Overview(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, resp.Pillars, len(progress.AllPillars))

	byPillar := map[progress.Pillar]PillarResponse{}
	for _, p := range resp.Pillars {
		byPillar[p.Pillar] = p
	}

	fin := byPillar[progress.PillarFinancial]
	assert.Equal(t, 63, fin.Percent)
	assert.Equal(t, 2, fin.GoalCount)
	assert.False(t, fin.Configured)

	env := byPillar[progress.PillarEnvironment]
	assert.Equal(t, 35, env.Percent)
	assert.True(t, env.Configured)

	assert.Equal(t, progress.DefaultPillarPercent, byPillar[progress.PillarHealth].Percent)

	require.NotNil(t, resp.CriticalArea)
	assert.Equal(t, progress.PillarEmotional, resp.CriticalArea.Pillar)
	assert.Equal(t, 60, resp.CriticalArea.Gap)
}

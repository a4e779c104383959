package habit

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/leveling"
	"github.com/saulo-duarte/ascend-lambda/internal/profile"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completionKey struct {
	habit uuid.UUID
	date  string
}

type fakeRepo struct {
	habits      map[uuid.UUID]Habit
	completions map[completionKey]HabitCompletion
	failToggle  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		habits:      map[uuid.UUID]Habit{},
		completions: map[completionKey]HabitCompletion{},
	}
}

func (r *fakeRepo) Create(h *Habit) error {
	r.habits[h.ID] = *h
	return nil
}

func (r *fakeRepo) FindByIDAndUserID(id, userID uuid.UUID) (*Habit, error) {
	h, ok := r.habits[id]
	if !ok || h.UserID != userID {
		return nil, ErrNotFound
	}
	return &h, nil
}

func (r *fakeRepo) ListByUser(userID uuid.UUID, activeOnly bool) ([]Habit, error) {
	var out []Habit
	for _, h := range r.habits {
		if h.UserID == userID && (!activeOnly || h.Active) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) Update(h *Habit) error {
	r.habits[h.ID] = *h
	return nil
}

func (r *fakeRepo) SoftDelete(id, userID uuid.UUID) error {
	if h, ok := r.habits[id]; !ok || h.UserID != userID {
		return ErrNotFound
	}
	delete(r.habits, id)
	return nil
}

func (r *fakeRepo) CompletedOn(userID uuid.UUID, date string) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	for k, c := range r.completions {
		if c.UserID == userID && k.date == date && c.Done {
			out[k.habit] = true
		}
	}
	return out, nil
}

func (r *fakeRepo) History(habitID uuid.UUID, from, to string) ([]HabitCompletion, error) {
	var out []HabitCompletion
	for k, c := range r.completions {
		if k.habit == habitID && k.date >= from && k.date <= to {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *fakeRepo) ListCompletions(userID uuid.UUID) ([]HabitCompletion, error) {
	var out []HabitCompletion
	for _, c := range r.completions {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRepo) Toggle(id, userID uuid.UUID, date string, fn func(h *Habit, c *HabitCompletion) error) (*Habit, *HabitCompletion, error) {
	h, ok := r.habits[id]
	if !ok || h.UserID != userID {
		return nil, nil, ErrNotFound
	}
	key := completionKey{habit: id, date: date}
	c, ok := r.completions[key]
	if !ok {
		c = HabitCompletion{ID: uuid.New(), HabitID: id, Date: date, UserID: userID}
	}
	if err := fn(&h, &c); err != nil {
		return nil, nil, err
	}
	if r.failToggle {
		return nil, nil, errors.New("deadlock detected")
	}
	r.habits[id] = h
	r.completions[key] = c
	return &h, &c, nil
}

type award struct {
	amount    int
	attribute *profile.Attribute
}

type fakeXP struct {
	awards []award
}

func (f *fakeXP) AwardXP(_ context.Context, _ uuid.UUID, amount int, attribute *profile.Attribute) (*leveling.Result, error) {
	f.awards = append(f.awards, award{amount: amount, attribute: attribute})
	return &leveling.Result{State: leveling.State{Level: 1, XP: amount * len(f.awards)}}, nil
}

const today = "2024-05-10"

func newTestService() (*habitService, *fakeRepo, *fakeXP) {
	repo := newFakeRepo()
	xp := &fakeXP{}
	svc := &habitService{repo: repo, xp: xp, today: func() util.DateKey { return today }}
	return svc, repo, xp
}

func seedHabit(t *testing.T, svc *habitService, userID uuid.UUID, attribute string) uuid.UUID {
	t.Helper()
	resp, err := svc.Create(context.Background(), userID, CreateHabitDTO{Name: "Meditate", Attribute: attribute})
	require.NoError(t, err)
	return resp.ID
}

func TestCreateDefaultsAndValidation(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	ctx := context.Background()

	resp, err := svc.Create(ctx, userID, CreateHabitDTO{Name: "Walk"})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.TimesPerWeek)
	assert.Equal(t, TimeAny, resp.PreferredTime)
	assert.Equal(t, KindGood, resp.Kind)
	assert.True(t, resp.Active)

	_, err = svc.Create(ctx, userID, CreateHabitDTO{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, userID, CreateHabitDTO{Name: "x", TimesPerWeek: 9})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, userID, CreateHabitDTO{Name: "x", Kind: "neutral"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, userID, CreateHabitDTO{Name: "x", Attribute: "luck"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToggleStreakScenario(t *testing.T) {
	svc, repo, _ := newTestService()
	userID := uuid.New()
	id := seedHabit(t, svc, userID, "")
	h := repo.habits[id]
	h.CurrentStreak, h.RecordStreak = 3, 5
	repo.habits[id] = h

	resp, err := svc.Toggle(context.Background(), userID, id, "")
	require.NoError(t, err)
	assert.True(t, resp.Done)
	assert.True(t, resp.Habit.CompletedToday)
	assert.Equal(t, 4, resp.Habit.CurrentStreak)
	assert.Equal(t, 5, resp.Habit.RecordStreak)

	resp, err = svc.Toggle(context.Background(), userID, id, "")
	require.NoError(t, err)
	assert.False(t, resp.Done)
	assert.Equal(t, 3, resp.Habit.CurrentStreak)
	assert.Equal(t, 5, resp.Habit.RecordStreak)
}

func TestToggleAwardsXPOncePerDate(t *testing.T) {
	svc, _, xp := newTestService()
	userID := uuid.New()
	id := seedHabit(t, svc, userID, "discipline")
	ctx := context.Background()

	resp, err := svc.Toggle(ctx, userID, id, today)
	require.NoError(t, err)
	require.NotNil(t, resp.XP)

	_, err = svc.Toggle(ctx, userID, id, today)
	require.NoError(t, err)
	resp, err = svc.Toggle(ctx, userID, id, today)
	require.NoError(t, err)
	assert.Nil(t, resp.XP)

	_, err = svc.Toggle(ctx, userID, id, "2024-05-09")
	require.NoError(t, err)

	require.Len(t, xp.awards, 2)
	for _, a := range xp.awards {
		assert.Equal(t, HabitCompletionXP, a.amount)
		require.NotNil(t, a.attribute)
		assert.Equal(t, profile.AttributeDiscipline, *a.attribute)
	}
}

func TestToggleOtherDateKeepsCompletedToday(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	id := seedHabit(t, svc, userID, "")
	ctx := context.Background()

	resp, err := svc.Toggle(ctx, userID, id, "2024-05-01")
	require.NoError(t, err)
	assert.True(t, resp.Done)
	assert.False(t, resp.Habit.CompletedToday)

	_, err = svc.Toggle(ctx, userID, id, "2024-13-01")
	assert.ErrorIs(t, err, util.ErrInvalidDate)
}

func TestStreakInvariantUnderRandomToggles(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	id := seedHabit(t, svc, userID, "")
	dates := []string{"2024-05-06", "2024-05-07", "2024-05-08", "2024-05-09", today}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		resp, err := svc.Toggle(context.Background(), userID, id, dates[rng.Intn(len(dates))])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, resp.Habit.CurrentStreak, 0)
		assert.GreaterOrEqual(t, resp.Habit.RecordStreak, resp.Habit.CurrentStreak)
	}
}

func TestToggleErrors(t *testing.T) {
	svc, repo, _ := newTestService()
	userID := uuid.New()
	id := seedHabit(t, svc, userID, "")
	ctx := context.Background()

	_, err := svc.Toggle(ctx, uuid.New(), id, "")
	assert.ErrorIs(t, err, ErrHabitNotFound)

	repo.failToggle = true
	_, err = svc.Toggle(ctx, userID, id, "")
	var we *util.WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "toggle habit", we.Op)
	repo.failToggle = false

	inactive := false
	_, err = svc.Update(ctx, userID, id, UpdateHabitDTO{Active: &inactive})
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, userID, id, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListMarksCompletedToday(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	ctx := context.Background()
	a := seedHabit(t, svc, userID, "")
	b := seedHabit(t, svc, userID, "")

	_, err := svc.Toggle(ctx, userID, a, "")
	require.NoError(t, err)

	list, err := svc.List(ctx, userID, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	got := map[uuid.UUID]bool{}
	for _, h := range list {
		got[h.ID] = h.CompletedToday
	}
	assert.True(t, got[a])
	assert.False(t, got[b])

	require.NoError(t, svc.Delete(ctx, userID, b))
	list, err = svc.List(ctx, userID, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.ErrorIs(t, svc.Delete(ctx, userID, b), ErrHabitNotFound)
}

func TestListAllKeepsPausedButNotDeleted(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	ctx := context.Background()
	paused := seedHabit(t, svc, userID, "")
	deleted := seedHabit(t, svc, userID, "")
	active := seedHabit(t, svc, userID, "")

	off := false
	_, err := svc.Update(ctx, userID, paused, UpdateHabitDTO{Active: &off})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, userID, deleted))

	list, err := svc.List(ctx, userID, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active, list[0].ID)

	list, err = svc.List(ctx, userID, true)
	require.NoError(t, err)
	ids := map[uuid.UUID]bool{}
	for _, h := range list {
		ids[h.ID] = h.Active
	}
	assert.Len(t, ids, 2)
	assert.False(t, ids[paused])
	assert.True(t, ids[active])
	assert.NotContains(t, ids, deleted)
}

func TestHistoryWindow(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	id := seedHabit(t, svc, userID, "")
	ctx := context.Background()

	for _, d := range []string{"2024-03-01", "2024-05-01", today} {
		_, err := svc.Toggle(ctx, userID, id, d)
		require.NoError(t, err)
	}

	rows, err := svc.History(ctx, userID, id, "", "")
	require.NoError(t, err)
	assert.Equal(t, []CompletionResponse{
		{Date: "2024-05-01", Done: true},
		{Date: today, Done: true},
	}, rows)

	rows, err = svc.History(ctx, userID, id, "2024-01-01", "2024-03-31")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = svc.History(ctx, userID, id, "2024-04-01", "2024-03-01")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

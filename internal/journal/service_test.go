package journal

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	entries  map[uuid.UUID]Entry
	failSave bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: map[uuid.UUID]Entry{}}
}

func (r *fakeRepo) Create(e *Entry) error {
	if r.failSave {
		return errors.New("db down")
	}
	r.entries[e.ID] = *e
	return nil
}

func (r *fakeRepo) FindByIDAndUserID(id, userID uuid.UUID) (*Entry, error) {
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *fakeRepo) ListByUser(userID uuid.UUID, from, to string) ([]Entry, error) {
	var out []Entry
	for _, e := range r.entries {
		if e.UserID != userID || (from != "" && e.Date < from) || (to != "" && e.Date > to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *fakeRepo) Update(e *Entry) error {
	if r.failSave {
		return errors.New("db down")
	}
	r.entries[e.ID] = *e
	return nil
}

func (r *fakeRepo) Delete(id, userID uuid.UUID) error {
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func newTestService(repo JournalRepository) *journalService {
	return &journalService{repo: repo, today: func() util.DateKey { return "2024-05-10" }}
}

func intPtr(v int) *int { return &v }

func TestCreateEntry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())
	userID := uuid.New()

	t.Run("defaults to today and trims gratitude", func(t *testing.T) {
		resp, err := svc.Create(ctx, userID, CreateEntryDTO{
			Title:     "Morning pages",
			Mood:      intPtr(4),
			Gratitude: []string{" coffee ", "", "sunlight"},
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-05-10", resp.Date)
		assert.Equal(t, []string{"coffee", "sunlight"}, resp.Gratitude)
		assert.Equal(t, 4, *resp.Mood)
	})

	t.Run("rejects mood out of range", func(t *testing.T) {
		for _, m := range []int{0, 6} {
			_, err := svc.Create(ctx, userID, CreateEntryDTO{Title: "x", Mood: intPtr(m)})
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("rejects empty entry", func(t *testing.T) {
		_, err := svc.Create(ctx, userID, CreateEntryDTO{Title: "  "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects bad date", func(t *testing.T) {
		_, err := svc.Create(ctx, userID, CreateEntryDTO{Title: "x", Date: "10/05/2024"})
		assert.ErrorIs(t, err, util.ErrInvalidDate)
	})
}

func TestListByRange(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())
	userID := uuid.New()

	for _, d := range []string{"2024-05-01", "2024-05-05", "2024-05-09"} {
		_, err := svc.Create(ctx, userID, CreateEntryDTO{Title: d, Date: d})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, uuid.New(), CreateEntryDTO{Title: "other", Date: "2024-05-05"})
	require.NoError(t, err)

	got, err := svc.List(ctx, userID, "2024-05-02", "2024-05-09")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-05-09", got[0].Date)
	assert.Equal(t, "2024-05-05", got[1].Date)

	_, err = svc.List(ctx, userID, "yesterday", "")
	assert.ErrorIs(t, err, util.ErrInvalidDate)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, CreateEntryDTO{Title: "draft", Mood: intPtr(2)})
	require.NoError(t, err)

	t.Run("other users cannot see the entry", func(t *testing.T) {
		_, err := svc.Get(ctx, uuid.New(), created.ID)
		assert.ErrorIs(t, err, ErrEntryNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), created.ID), ErrEntryNotFound)
	})

	t.Run("partial update and clear mood", func(t *testing.T) {
		content := "long day"
		resp, err := svc.Update(ctx, owner, created.ID, UpdateEntryDTO{Content: &content, ClearMood: true})
		require.NoError(t, err)
		assert.Equal(t, "draft", resp.Title)
		assert.Equal(t, "long day", resp.Content)
		assert.Nil(t, resp.Mood)
	})

	t.Run("write failure surfaces WriteError", func(t *testing.T) {
		repo.failSave = true
		defer func() { repo.failSave = false }()
		title := "final"
		_, err := svc.Update(ctx, owner, created.ID, UpdateEntryDTO{Title: &title})
		var we *util.WriteError
		require.True(t, errors.As(err, &we))
		assert.Equal(t, "update journal entry", we.Op)
	})

	require.NoError(t, svc.Delete(ctx, owner, created.ID))
	_, err = svc.Get(ctx, owner, created.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

package profile

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/leveling"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	profiles map[uuid.UUID]Profile
	failSave bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: map[uuid.UUID]Profile{}}
}

func (r *fakeRepo) Create(p *Profile) error {
	if _, ok := r.profiles[p.UserID]; !ok {
		r.profiles[p.UserID] = *p
	}
	return nil
}

func (r *fakeRepo) FindByUserID(userID uuid.UUID) (*Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}

func (r *fakeRepo) Mutate(userID uuid.UUID, fn func(p *Profile) error) (*Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	if r.failSave {
		return nil, errors.New("connection refused")
	}
	r.profiles[userID] = p
	return &p, nil
}

func (r *fakeRepo) DebitCoins(userID uuid.UUID, amount int) (bool, error) {
	p := r.profiles[userID]
	if p.Coins < amount {
		return false, nil
	}
	p.Coins -= amount
	r.profiles[userID] = p
	return true, nil
}

func newTestService(repo ProfileRepository, today string) *profileService {
	return &profileService{repo: repo, today: func() util.DateKey { return util.DateKey(today) }}
}

func seed(t *testing.T, svc *profileService, repo *fakeRepo, state leveling.State) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	require.NoError(t, svc.EnsureProfile(context.Background(), userID, "Ana"))
	p := repo.profiles[userID]
	p.SetState(state)
	repo.profiles[userID] = p
	return userID
}

func TestEnsureProfileIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "2024-05-01")
	userID := uuid.New()

	require.NoError(t, svc.EnsureProfile(context.Background(), userID, "Ana"))
	_, err := svc.AwardXP(context.Background(), userID, 0, nil)
	require.NoError(t, err)
	require.NoError(t, svc.EnsureProfile(context.Background(), userID, "Other"))

	got, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.DisplayName)
	assert.Equal(t, 1, got.Level)
	assert.Equal(t, 1000, got.XPToNextLevel)
}

func TestAddXPWithoutLevelUp(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "2024-05-01")
	userID := seed(t, svc, repo, leveling.State{Level: 2, XP: 900})

	res, err := svc.AddXP(context.Background(), userID, 300)
	require.NoError(t, err)
	assert.Equal(t, leveling.State{Level: 2, XP: 1200}, res.State)
	assert.False(t, res.LeveledUp)
	assert.Zero(t, res.BonusCoins)
	assert.InDelta(t, 60.0, res.LevelProgress, 1e-9)
}

func TestAddXPLevelUpCreditsBonus(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "2024-05-01")
	userID := seed(t, svc, repo, leveling.State{Level: 2, XP: 1900, Coins: 5})

	res, err := svc.AddXP(context.Background(), userID, 300)
	require.NoError(t, err)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 3, res.State.Level)
	assert.Equal(t, 200, res.State.XP)
	assert.Equal(t, 5+leveling.LevelUpBonusCoins, repo.profiles[userID].Coins)
}

func TestAddXPRejectsOversizedAmount(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "2024-05-01")
	userID := seed(t, svc, repo, leveling.State{Level: 2, XP: 1500})

	_, err := svc.AddXP(context.Background(), userID, math.MaxInt-100)
	assert.ErrorIs(t, err, leveling.ErrXPTooLarge)

	p := repo.profiles[userID]
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 1500, p.XP)
}

func TestAwardXPBumpsAttribute(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "2024-05-01")
	userID := seed(t, svc, repo, leveling.State{Level: 1})
	attr := AttributeDiscipline

	_, err := svc.AwardXP(context.Background(), userID, 10, &attr)
	require.NoError(t, err)
	_, err = svc.AwardXP(context.Background(), userID, 10, &attr)
	require.NoError(t, err)

	p := repo.profiles[userID]
	assert.Equal(t, 2, p.Attributes.Data()[AttributeDiscipline])
	assert.Equal(t, 20, p.XP)
}

func TestSpendCoinsDeclinesWithoutMutation(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "2024-05-01")
	userID := seed(t, svc, repo, leveling.State{Level: 1, Coins: 40})

	res, err := svc.SpendCoins(context.Background(), userID, 50)
	assert.ErrorIs(t, err, leveling.ErrInsufficientCoins)
	require.NotNil(t, res)
	assert.True(t, res.Declined)
	assert.Equal(t, 40, res.Coins)
	assert.Equal(t, 40, repo.profiles[userID].Coins)

	res, err = svc.SpendCoins(context.Background(), userID, 15)
	require.NoError(t, err)
	assert.False(t, res.Declined)
	assert.Equal(t, 25, res.Coins)
}

func TestChecklistResetsOnNewDay(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "2024-05-01")
	userID := seed(t, svc, repo, leveling.State{Level: 1})
	ctx := context.Background()

	got, err := svc.ToggleChecklist(ctx, userID, ChecklistWater)
	require.NoError(t, err)
	assert.True(t, got.Checklist[ChecklistWater])

	got, err = svc.ToggleChecklist(ctx, userID, ChecklistReading)
	require.NoError(t, err)
	assert.True(t, got.Checklist[ChecklistWater])
	assert.True(t, got.Checklist[ChecklistReading])

	svc.today = func() util.DateKey { return "2024-05-02" }
	got, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got.Checklist)

	got, err = svc.ToggleChecklist(ctx, userID, ChecklistReading)
	require.NoError(t, err)
	assert.Equal(t, Checklist{ChecklistReading: true}, got.Checklist)

	_, err = svc.ToggleChecklist(ctx, userID, ChecklistItem("juggling"))
	var keyErr *InvalidKeyError
	assert.ErrorAs(t, err, &keyErr)
}

func TestParseEqualizer(t *testing.T) {
	eq, err := ParseEqualizer(map[string]int{"energy": 7, "mood": 3})
	require.NoError(t, err)
	assert.Equal(t, Equalizer{EqualizerEnergy: 7, EqualizerMood: 3}, eq)

	_, err = ParseEqualizer(map[string]int{"vibes": 2})
	var keyErr *InvalidKeyError
	assert.ErrorAs(t, err, &keyErr)

	_, err = ParseEqualizer(map[string]int{"focus": 11})
	assert.Error(t, err)
}

func TestParseChecklistAndAttribute(t *testing.T) {
	c, err := ParseChecklist(map[string]bool{"water": true})
	require.NoError(t, err)
	assert.True(t, c[ChecklistWater])

	_, err = ParseChecklist(map[string]bool{"nap": true})
	assert.Error(t, err)

	a, err := ParseAttribute("")
	require.NoError(t, err)
	assert.Nil(t, a)

	a, err = ParseAttribute("wisdom")
	require.NoError(t, err)
	assert.Equal(t, AttributeWisdom, *a)
}

func TestWriteFailureIsTyped(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "2024-05-01")
	userID := seed(t, svc, repo, leveling.State{Level: 1})
	repo.failSave = true

	_, err := svc.AddXP(context.Background(), userID, 10)
	var we *util.WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "award xp", we.Op)
}

func TestAIKeyRoundTrip(t *testing.T) {
	t.Setenv("CRYPTO_KEY", "01234567890123456789012345678901")
	config.InitCrypto()

	repo := newFakeRepo()
	svc := newTestService(repo, "2024-05-01")
	userID := seed(t, svc, repo, leveling.State{Level: 1})
	ctx := context.Background()

	require.NoError(t, svc.SetAIKey(ctx, userID, "AIza-user-key"))
	assert.NotEqual(t, "AIza-user-key", repo.profiles[userID].EncryptedAIKey)

	key, err := svc.AIKey(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "AIza-user-key", key)

	require.NoError(t, svc.SetAIKey(ctx, userID, ""))
	key, err = svc.AIKey(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, key)
}

package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	txs      map[uuid.UUID]Transaction
	failSave bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{txs: map[uuid.UUID]Transaction{}}
}

func (r *fakeRepo) Create(t *Transaction) error {
	if r.failSave {
		return errors.New("db down")
	}
	r.txs[t.ID] = *t
	return nil
}

func (r *fakeRepo) FindByIDAndUserID(id, userID uuid.UUID) (*Transaction, error) {
	t, ok := r.txs[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *fakeRepo) ListByUser(userID uuid.UUID, f ListFilter) ([]Transaction, error) {
	var out []Transaction
	for _, t := range r.txs {
		if t.UserID != userID || (f.From != "" && t.Date < f.From) || (f.To != "" && t.Date > f.To) {
			continue
		}
		if f.Kind != "" && t.Kind != f.Kind {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeRepo) Update(t *Transaction) error {
	if r.failSave {
		return errors.New("db down")
	}
	r.txs[t.ID] = *t
	return nil
}

func (r *fakeRepo) Delete(id, userID uuid.UUID) error {
	t, ok := r.txs[id]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(r.txs, id)
	return nil
}

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, util.Location())

func newTestService(repo FinanceRepository) *financeService {
	return &financeService{repo: repo, now: func() time.Time { return fixedNow }}
}

func TestSummarize(t *testing.T) {
	s := Summarize("2024-05", []Transaction{
		{Kind: Income, AmountCents: 500000, Category: "salary"},
		{Kind: Expense, AmountCents: 120000, Category: "rent"},
		{Kind: Expense, AmountCents: 3000, Category: "food"},
		{Kind: Expense, AmountCents: 4500, Category: "food"},
	})

	assert.Equal(t, int64(500000), s.IncomeCents)
	assert.Equal(t, int64(127500), s.ExpenseCents)
	assert.Equal(t, int64(372500), s.BalanceCents)
	assert.Equal(t, 4, s.Transactions)
	assert.Equal(t, []CategoryTotal{
		{Category: "rent", AmountCents: 120000},
		{Category: "food", AmountCents: 7500},
	}, s.ByCategory)

	empty := Summarize("2024-06", nil)
	assert.Zero(t, empty.BalanceCents)
	assert.NotNil(t, empty.ByCategory)
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())
	userID := uuid.New()

	resp, err := svc.Create(ctx, userID, CreateTransactionDTO{Kind: Expense, AmountCents: 1250, Category: " Food "})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", resp.Date)
	assert.Equal(t, "food", resp.Category)

	resp, err = svc.Create(ctx, userID, CreateTransactionDTO{Kind: Income, AmountCents: 10})
	require.NoError(t, err)
	assert.Equal(t, defaultCategory, resp.Category)

	cases := []CreateTransactionDTO{
		{Kind: "transfer", AmountCents: 100},
		{Kind: Expense, AmountCents: 0},
		{Kind: Expense, AmountCents: -5},
	}
	for _, c := range cases {
		_, err := svc.Create(ctx, userID, c)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	_, err = svc.Create(ctx, userID, CreateTransactionDTO{Kind: Expense, AmountCents: 1, Date: "2024-13-01"})
	assert.ErrorIs(t, err, util.ErrInvalidDate)
}

func TestMonthlySummary(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())
	userID := uuid.New()

	seed := []CreateTransactionDTO{
		{Kind: Income, AmountCents: 300000, Category: "salary", Date: "2024-05-01"},
		{Kind: Expense, AmountCents: 8000, Category: "food", Date: "2024-05-31"},
		{Kind: Expense, AmountCents: 9999, Category: "food", Date: "2024-04-30"},
		{Kind: Expense, AmountCents: 7777, Category: "food", Date: "2024-06-01"},
	}
	for _, d := range seed {
		_, err := svc.Create(ctx, userID, d)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, uuid.New(), CreateTransactionDTO{Kind: Expense, AmountCents: 5, Date: "2024-05-05"})
	require.NoError(t, err)

	got, err := svc.MonthlySummary(ctx, userID, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-05", got.Month)
	assert.Equal(t, int64(300000), got.IncomeCents)
	assert.Equal(t, int64(8000), got.ExpenseCents)
	assert.Equal(t, int64(292000), got.BalanceCents)
	assert.Equal(t, 2, got.Transactions)

	_, err = svc.MonthlySummary(ctx, userID, "May 2024")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestUpdateDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, CreateTransactionDTO{Kind: Expense, AmountCents: 100, Category: "fun"})
	require.NoError(t, err)

	amount := int64(250)
	_, err = svc.Update(ctx, uuid.New(), created.ID, UpdateTransactionDTO{AmountCents: &amount})
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	updated, err := svc.Update(ctx, owner, created.ID, UpdateTransactionDTO{AmountCents: &amount})
	require.NoError(t, err)
	assert.Equal(t, int64(250), updated.AmountCents)
	assert.Equal(t, "fun", updated.Category)

	negative := int64(-1)
	_, err = svc.Update(ctx, owner, created.ID, UpdateTransactionDTO{AmountCents: &negative})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.failSave = true
	_, err = svc.Update(ctx, owner, created.ID, UpdateTransactionDTO{AmountCents: &amount})
	var we *util.WriteError
	require.True(t, errors.As(err, &we))
	repo.failSave = false

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), created.ID), ErrTransactionNotFound)
	require.NoError(t, svc.Delete(ctx, owner, created.ID))
	assert.Empty(t, repo.txs)
}

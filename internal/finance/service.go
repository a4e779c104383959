package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidInput        = errors.New("invalid transaction")
	ErrInvalidMonth        = errors.New("invalid month, expected YYYY-MM")
)

type FinanceService interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateTransactionDTO) (*TransactionResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]TransactionResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, dto UpdateTransactionDTO) (*TransactionResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	MonthlySummary(ctx context.Context, userID uuid.UUID, month string) (*MonthlySummary, error)
}

type financeService struct {
	repo FinanceRepository
	now  func() time.Time
}

func NewService(repo FinanceRepository) FinanceService {
	return &financeService{repo: repo, now: time.Now}
}

func normalizeCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return defaultCategory
	}
	return c
}

func validate(t *Transaction) error {
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: kind must be income or expense", ErrInvalidInput)
	}
	if t.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	return nil
}

func (s *financeService) Create(ctx context.Context, userID uuid.UUID, dto CreateTransactionDTO) (*TransactionResponse, error) {
	date := util.DateKeyOf(s.now())
	if dto.Date != "" {
		parsed, err := util.ParseDateKey(dto.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	now := s.now()
	t := &Transaction{
		ID:          uuid.New(),
		Kind:        dto.Kind,
		AmountCents: dto.AmountCents,
		Category:    normalizeCategory(dto.Category),
		Description: strings.TrimSpace(dto.Description),
		Date:        date.String(),
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validate(t); err != nil {
		return nil, err
	}
	if err := s.repo.Create(t); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to create transaction")
		return nil, util.NewWriteError("create transaction", err)
	}

	resp := toResponse(t)
	return &resp, nil
}

func (s *financeService) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]TransactionResponse, error) {
	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := util.ParseDateKey(d); err != nil {
			return nil, err
		}
	}
	if filter.Kind != "" && !filter.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, filter.Kind)
	}

	txs, err := s.repo.ListByUser(userID, filter)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list transactions")
		return nil, err
	}
	out := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, toResponse(&txs[i]))
	}
	return out, nil
}

func (s *financeService) Update(ctx context.Context, userID, id uuid.UUID, dto UpdateTransactionDTO) (*TransactionResponse, error) {
	t, err := s.repo.FindByIDAndUserID(id, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	if dto.Kind != nil {
		t.Kind = *dto.Kind
	}
	if dto.AmountCents != nil {
		t.AmountCents = *dto.AmountCents
	}
	if dto.Category != nil {
		t.Category = normalizeCategory(*dto.Category)
	}
	if dto.Description != nil {
		t.Description = strings.TrimSpace(*dto.Description)
	}
	if dto.Date != nil {
		parsed, err := util.ParseDateKey(*dto.Date)
		if err != nil {
			return nil, err
		}
		t.Date = parsed.String()
	}
	if err := validate(t); err != nil {
		return nil, err
	}

	t.UpdatedAt = s.now()
	if err := s.repo.Update(t); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to update transaction")
		return nil, util.NewWriteError("update transaction", err)
	}

	resp := toResponse(t)
	return &resp, nil
}

func (s *financeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrTransactionNotFound
		}
		config.WithContext(ctx).WithError(err).Error("Failed to delete transaction")
		return util.NewWriteError("delete transaction", err)
	}
	return nil
}

// MonthlySummary defaults to the current month when month is empty.
func (s *financeService) MonthlySummary(ctx context.Context, userID uuid.UUID, month string) (*MonthlySummary, error) {
	if month == "" {
		month = s.now().In(util.Location()).Format(MonthLayout)
	}
	start, err := time.ParseInLocation(MonthLayout, month, util.Location())
	if err != nil {
		return nil, ErrInvalidMonth
	}
	from := util.DateKeyOf(start)
	to := util.DateKeyOf(start.AddDate(0, 1, -1))

	txs, err := s.repo.ListByUser(userID, ListFilter{From: from.String(), To: to.String()})
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load transactions for summary")
		return nil, err
	}

	summary := Summarize(month, txs)
	return &summary, nil
}

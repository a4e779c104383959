package finance

import "github.com/google/uuid"

type CreateTransactionDTO struct {
	Kind        Kind   `json:"kind"`
	AmountCents int64  `json:"amount_cents"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type UpdateTransactionDTO struct {
	Kind        *Kind   `json:"kind"`
	AmountCents *int64  `json:"amount_cents"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
}

type ListFilter struct {
	From string
	To   string
	Kind Kind
}

type TransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	Kind        Kind      `json:"kind"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
}

type CategoryTotal struct {
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
}

type MonthlySummary struct {
	Month        string          `json:"month"`
	IncomeCents  int64           `json:"income_cents"`
	ExpenseCents int64           `json:"expense_cents"`
	BalanceCents int64           `json:"balance_cents"`
	ByCategory   []CategoryTotal `json:"expenses_by_category"`
	Transactions int             `json:"transactions"`
}

func toResponse(t *Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Kind:        t.Kind,
		AmountCents: t.AmountCents,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
	}
}

package finance

import "sort"

// Summarize totals a month of transactions. Category totals cover expenses
// only, largest first.
func Summarize(month string, txs []Transaction) MonthlySummary {
	s := MonthlySummary{Month: month, ByCategory: []CategoryTotal{}}
	byCategory := map[string]int64{}

	for _, t := range txs {
		s.Transactions++
		switch t.Kind {
		case Income:
			s.IncomeCents += t.AmountCents
		case Expense:
			s.ExpenseCents += t.AmountCents
			byCategory[t.Category] += t.AmountCents
		}
	}
	s.BalanceCents = s.IncomeCents - s.ExpenseCents

	for c, amount := range byCategory {
		s.ByCategory = append(s.ByCategory, CategoryTotal{Category: c, AmountCents: amount})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		a, b := s.ByCategory[i], s.ByCategory[j]
		if a.AmountCents != b.AmountCents {
			return a.AmountCents > b.AmountCents
		}
		return a.Category < b.Category
	})
	return s
}

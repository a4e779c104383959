package finance

type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

func (k Kind) IsValid() bool {
	return k == Income || k == Expense
}

const MonthLayout = "2006-01"

const defaultCategory = "other"

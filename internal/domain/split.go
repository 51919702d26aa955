package domain

// Splitter field widths.
const (
	MaxMemberNameWidth  = 49
	MaxSplitDescWidth   = 79
	SplitBalanceEpsilon = 0.01
)

// SplitMode selects how an expense is divided between participants.
type SplitMode string

const (
	SplitEqual   SplitMode = "equal"
	SplitPercent SplitMode = "percent"
)

// SplitMember is someone sharing expenses. A positive balance means the
// group owes them money.
type SplitMember struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// ExpenseShare is one participant's part of an expense.
type ExpenseShare struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// SplitExpense is a payment made by one member on behalf of several.
type SplitExpense struct {
	Date        string         `json:"date"`
	Description string         `json:"description"`
	Amount      float64        `json:"amount"`
	Payer       string         `json:"payer"`
	Shares      []ExpenseShare `json:"shares"`
}

// Settlement is a direct repayment between two members.
type Settlement struct {
	Date   string  `json:"date"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Transfer is a suggested payment that moves balances towards zero.
type Transfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// SplitState is everything the splitter remembers, in insertion order.
type SplitState struct {
	Members     []SplitMember  `json:"members"`
	Expenses    []SplitExpense `json:"expenses"`
	Settlements []Settlement   `json:"settlements"`
}

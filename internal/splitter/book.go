// Package splitter shares expenses inside a group: members, equal and
// percentage splits, running balances, settlements and suggested transfers.
//
// Money is handled with decimal arithmetic. Shares are rounded to cents and
// the rounding remainder goes to the first participant, so an expense's
// shares always add up to its amount.
package splitter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"ledgerguard/internal/domain"
)

var (
	ErrInvalidName         = errors.New("invalid member name")
	ErrMemberExists        = errors.New("member already exists")
	ErrUnknownMember       = errors.New("unknown member")
	ErrUnsettledBalance    = errors.New("cannot remove member with unsettled balance")
	ErrNoMembers           = errors.New("add members before recording expenses")
	ErrNeedTwoMembers      = errors.New("need at least two members")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidField        = errors.New("invalid field")
	ErrInvalidParticipants = errors.New("invalid participants")
	ErrInvalidPercentages  = errors.New("invalid percentages")
	ErrUnknownSplitMode    = errors.New("unknown split type")
	ErrSameMember          = errors.New("cannot settle with same member")
)

var (
	cents   = int32(2)
	epsilon = decimal.NewFromFloat(domain.SplitBalanceEpsilon)
)

// ExpenseRequest describes an expense to record. Percentages are only read
// for SplitPercent and pair up with Participants by position; they are
// weights and need not add up to 100.
type ExpenseRequest struct {
	Payer        string
	Amount       float64
	Date         string
	Description  string
	Mode         domain.SplitMode
	Participants []string
	Percentages  []float64
}

// Book applies splitter operations to a SplitState. It is not safe for
// concurrent use.
type Book struct {
	state *domain.SplitState
}

// New wraps state. A nil state starts an empty book.
func New(state *domain.SplitState) *Book {
	if state == nil {
		state = &domain.SplitState{}
	}
	return &Book{state: state}
}

// State returns the book's current state.
func (b *Book) State() *domain.SplitState {
	return b.state
}

func (b *Book) find(name string) int {
	for i, m := range b.state.Members {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func (b *Book) member(name string) (int, error) {
	i := b.find(name)
	if i < 0 {
		return -1, fmt.Errorf("%s: %w", name, ErrUnknownMember)
	}
	return i, nil
}

// AddMember adds name with a zero balance. Names are single words.
func (b *Book) AddMember(name string) error {
	if name == "" || len(name) > domain.MaxMemberNameWidth || strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("'%s' must be 1-%d characters without spaces: %w", name, domain.MaxMemberNameWidth, ErrInvalidName)
	}
	if b.find(name) >= 0 {
		return fmt.Errorf("%s: %w", name, ErrMemberExists)
	}
	b.state.Members = append(b.state.Members, domain.SplitMember{Name: name})
	return nil
}

// RemoveMember drops name if their balance is settled to within a cent.
// Past expenses and settlements keep the name.
func (b *Book) RemoveMember(name string) error {
	i, err := b.member(name)
	if err != nil {
		return err
	}
	if decimal.NewFromFloat(b.state.Members[i].Balance).Abs().GreaterThan(epsilon) {
		return fmt.Errorf("%s has %.2f: %w", name, b.state.Members[i].Balance, ErrUnsettledBalance)
	}
	b.state.Members = append(b.state.Members[:i], b.state.Members[i+1:]...)
	return nil
}

// RecordExpense splits req.Amount between the participants, credits the
// payer with the full amount and debits every participant their share.
func (b *Book) RecordExpense(req ExpenseRequest) (domain.SplitExpense, error) {
	if len(b.state.Members) == 0 {
		return domain.SplitExpense{}, ErrNoMembers
	}
	payer, err := b.member(req.Payer)
	if err != nil {
		return domain.SplitExpense{}, err
	}
	if req.Amount <= 0 {
		return domain.SplitExpense{}, fmt.Errorf("%.2f must be positive: %w", req.Amount, ErrInvalidAmount)
	}
	if err := checkDate(req.Date); err != nil {
		return domain.SplitExpense{}, err
	}
	if len(req.Description) > domain.MaxSplitDescWidth {
		return domain.SplitExpense{}, fmt.Errorf("description must be at most %d characters: %w", domain.MaxSplitDescWidth, ErrInvalidField)
	}

	participants, err := b.participants(req.Participants)
	if err != nil {
		return domain.SplitExpense{}, err
	}

	amount := decimal.NewFromFloat(req.Amount)
	var shares []decimal.Decimal
	switch req.Mode {
	case domain.SplitEqual:
		shares = equalShares(amount, len(participants))
	case domain.SplitPercent:
		shares, err = percentShares(amount, req.Percentages, len(participants))
		if err != nil {
			return domain.SplitExpense{}, err
		}
	default:
		return domain.SplitExpense{}, fmt.Errorf("'%s': %w", req.Mode, ErrUnknownSplitMode)
	}

	expense := domain.SplitExpense{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Payer:       req.Payer,
		Shares:      make([]domain.ExpenseShare, 0, len(participants)),
	}
	for k, i := range participants {
		m := &b.state.Members[i]
		m.Balance = decimal.NewFromFloat(m.Balance).Sub(shares[k]).InexactFloat64()
		expense.Shares = append(expense.Shares, domain.ExpenseShare{Name: m.Name, Amount: shares[k].InexactFloat64()})
	}
	p := &b.state.Members[payer]
	p.Balance = decimal.NewFromFloat(p.Balance).Add(amount).InexactFloat64()

	b.state.Expenses = append(b.state.Expenses, expense)
	return expense, nil
}

// Settle records that s.From paid s.To directly.
func (b *Book) Settle(s domain.Settlement) error {
	if len(b.state.Members) < 2 {
		return ErrNeedTwoMembers
	}
	from, err := b.member(s.From)
	if err != nil {
		return err
	}
	to, err := b.member(s.To)
	if err != nil {
		return err
	}
	if from == to {
		return fmt.Errorf("%s: %w", s.From, ErrSameMember)
	}
	if s.Amount <= 0 {
		return fmt.Errorf("%.2f must be positive: %w", s.Amount, ErrInvalidAmount)
	}
	if err := checkDate(s.Date); err != nil {
		return err
	}

	amount := decimal.NewFromFloat(s.Amount)
	b.state.Members[from].Balance = decimal.NewFromFloat(b.state.Members[from].Balance).Add(amount).InexactFloat64()
	b.state.Members[to].Balance = decimal.NewFromFloat(b.state.Members[to].Balance).Sub(amount).InexactFloat64()
	b.state.Settlements = append(b.state.Settlements, s)
	return nil
}

func (b *Book) participants(names []string) ([]int, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("none given: %w", ErrInvalidParticipants)
	}
	seen := make(map[string]bool, len(names))
	out := make([]int, 0, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("%s listed twice: %w", name, ErrInvalidParticipants)
		}
		seen[name] = true
		i, err := b.member(name)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

func checkDate(date string) error {
	if date == "" || len(date) > domain.DateWidth {
		return fmt.Errorf("date '%s' must be 1-%d characters: %w", date, domain.DateWidth, ErrInvalidField)
	}
	return nil
}

func equalShares(amount decimal.Decimal, n int) []decimal.Decimal {
	share := amount.Div(decimal.NewFromInt(int64(n))).Round(cents)
	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = share
	}
	return withRemainder(amount, shares)
}

func percentShares(amount decimal.Decimal, pcts []float64, n int) ([]decimal.Decimal, error) {
	if len(pcts) != n {
		return nil, fmt.Errorf("%d percentages for %d participants: %w", len(pcts), n, ErrInvalidPercentages)
	}
	total := decimal.Zero
	weights := make([]decimal.Decimal, n)
	for i, p := range pcts {
		if p < 0 {
			return nil, fmt.Errorf("%.2f is negative: %w", p, ErrInvalidPercentages)
		}
		weights[i] = decimal.NewFromFloat(p)
		total = total.Add(weights[i])
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("total is %s: %w", total, ErrInvalidPercentages)
	}

	shares := make([]decimal.Decimal, n)
	for i, w := range weights {
		shares[i] = amount.Mul(w).Div(total).Round(cents)
	}
	return withRemainder(amount, shares), nil
}

// withRemainder moves whatever rounding left over onto the first share.
func withRemainder(amount decimal.Decimal, shares []decimal.Decimal) []decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}
	shares[0] = shares[0].Add(amount.Sub(sum))
	return shares
}

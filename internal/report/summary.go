// Package report builds the spending summary shown alongside fraud scans:
// category totals, the largest expenses and per-month totals.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/fraud"
)

// TopExpensesLimit is how many of the largest transactions are listed.
const TopExpensesLimit = 5

// Summarize totals txs by category and by YYYY-MM prefix, in first-seen
// order, and picks the largest expenses. Ties keep their ledger order.
func Summarize(source string, txs []domain.Transaction) *domain.SpendingReport {
	rep := &domain.SpendingReport{
		Source:         source,
		CategoryTotals: make([]domain.CategoryTotal, 0),
		TopExpenses:    make([]domain.Transaction, 0),
		Monthly:        make([]domain.MonthTotal, 0),
	}

	var categoryOrder, monthOrder []string
	categories := make(map[string]decimal.Decimal)
	months := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		amount := decimal.NewFromFloat(tx.Amount)

		if _, ok := categories[tx.Category]; !ok {
			categoryOrder = append(categoryOrder, tx.Category)
		}
		categories[tx.Category] = categories[tx.Category].Add(amount)

		month := fraud.MonthKey(tx.Date)
		if _, ok := months[month]; !ok {
			monthOrder = append(monthOrder, month)
		}
		months[month] = months[month].Add(amount)
	}

	for _, c := range categoryOrder {
		rep.CategoryTotals = append(rep.CategoryTotals, domain.CategoryTotal{Category: c, Total: categories[c].InexactFloat64()})
	}
	for _, m := range monthOrder {
		rep.Monthly = append(rep.Monthly, domain.MonthTotal{Month: m, Total: months[m].InexactFloat64()})
	}

	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})
	if len(sorted) > TopExpensesLimit {
		sorted = sorted[:TopExpensesLimit]
	}
	rep.TopExpenses = append(rep.TopExpenses, sorted...)

	return rep
}

// Render writes the summary in the ledger's plain-text layout.
func Render(w io.Writer, rep *domain.SpendingReport) error {
	ew := &errWriter{w: w}

	ew.printf("\ncategory totals\n")
	for _, c := range rep.CategoryTotals {
		ew.printf("%-15s : %.2f\n", c.Category, c.Total)
	}

	ew.printf("\ntop %d expenses\n", TopExpensesLimit)
	for _, tx := range rep.TopExpenses {
		ew.printf("%-10s %-12s %-20s %.2f\n", tx.Date, tx.Category, tx.Description, tx.Amount)
	}

	ew.printf("\nmonthly summary\n")
	for _, m := range rep.Monthly {
		ew.printf("%s : %.2f\n", m.Month, m.Total)
	}

	return ew.err
}

// errWriter remembers the first write error so Render can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

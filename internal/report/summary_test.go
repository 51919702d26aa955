package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerguard/internal/domain"
)

func TestSummarize(t *testing.T) {
	txs := []domain.Transaction{
		{Date: "2024-03-04", Category: "food", Description: "lunch", Amount: 0.1},
		{Date: "2024-03-05", Category: "rent", Description: "flat", Amount: 800},
		{Date: "2024-03-06", Category: "food", Description: "dinner", Amount: 0.2},
		{Date: "2024-04-01", Category: "travel", Description: "train", Amount: 40},
		{Date: "2024-04-02", Category: "food", Description: "snack", Amount: 40},
		{Date: "2024-04-03", Category: "food", Description: "market", Amount: 55},
		{Date: "2024-04-04", Category: "tech", Description: "cable", Amount: 12},
	}

	rep := Summarize("ledger.csv", txs)

	assert.Equal(t, "ledger.csv", rep.Source)
	assert.Equal(t, []domain.CategoryTotal{
		{Category: "food", Total: 95.3},
		{Category: "rent", Total: 800},
		{Category: "travel", Total: 40},
		{Category: "tech", Total: 12},
	}, rep.CategoryTotals)

	assert.Equal(t, []domain.MonthTotal{
		{Month: "2024-03", Total: 800.3},
		{Month: "2024-04", Total: 147},
	}, rep.Monthly)

	require.Len(t, rep.TopExpenses, TopExpensesLimit)
	descriptions := make([]string, 0, len(rep.TopExpenses))
	for _, tx := range rep.TopExpenses {
		descriptions = append(descriptions, tx.Description)
	}
	assert.Equal(t, []string{"flat", "market", "train", "snack", "cable"}, descriptions, "ties keep ledger order")

	assert.Equal(t, "lunch", txs[0].Description, "input is not reordered")
}

func TestSummarize_Empty(t *testing.T) {
	rep := Summarize("ledger.csv", nil)

	assert.Empty(t, rep.CategoryTotals)
	assert.Empty(t, rep.TopExpenses)
	assert.Empty(t, rep.Monthly)
}

func TestRender(t *testing.T) {
	rep := Summarize("ledger.csv", []domain.Transaction{
		{Date: "2024-03-04", Category: "food", Description: "lunch", Amount: 10.5},
		{Date: "2024-03-05", Category: "rent", Description: "flat", Amount: 800},
	})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rep))

	want := "\ncategory totals\n" +
		"food            : 10.50\n" +
		"rent            : 800.00\n" +
		"\ntop 5 expenses\n" +
		"2024-03-05 rent         flat                 800.00\n" +
		"2024-03-04 food         lunch                10.50\n" +
		"\nmonthly summary\n" +
		"2024-03 : 810.50\n"
	assert.Equal(t, want, buf.String())
}

package gateway

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/log"
)

func TestCSVTransactionRepository_GetTransactions(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []domain.Transaction
		wantErr  bool
	}{
		{
			name: "valid ledger",
			content: "date,category,text,amount\n" +
				"2024-03-04,food,lunch 12:30,10.50\n" +
				"2024-03-05,travel,Coffee @NY,600\n",
			expected: []domain.Transaction{
				{Date: "2024-03-04", Category: "food", Description: "lunch 12:30", Amount: 10.50},
				{Date: "2024-03-05", Category: "travel", Description: "Coffee @NY", Amount: 600},
			},
		},
		{
			name:     "empty file with header only",
			content:  "date,category,text,amount\n",
			expected: nil,
		},
		{
			name:     "empty file",
			content:  "",
			expected: nil,
		},
		{
			name: "malformed rows are skipped",
			content: "date,category,text,amount\n" +
				"2024-03-04,food,lunch\n" +
				"2024-03-04,food,lunch,abc\n" +
				"2024-03-04T10:00,food,lunch,1\n" +
				"2024-03-04," + strings.Repeat("c", 30) + ",lunch,1\n" +
				"2024-03-04,food," + strings.Repeat("t", 50) + ",1\n" +
				"2024-03-04,,lunch,1\n" +
				"2024-03-04,food,\"fish, chips\",1\n" +
				"2024-03-06,food," + strings.Repeat("t", 49) + ",2\n",
			expected: []domain.Transaction{
				{Date: "2024-03-06", Category: "food", Description: strings.Repeat("t", 49), Amount: 2},
			},
		},
		{
			name: "malformed dates are kept for the engine",
			content: "date,category,text,amount\n" +
				"2024/3/4,food,lunch,10\n",
			expected: []domain.Transaction{
				{Date: "2024/3/4", Category: "food", Description: "lunch", Amount: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "transactions.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			repo := NewCSVTransactionRepository(log.Discard())
			got, err := repo.GetTransactions(context.Background(), domain.LedgerFilter{Source: path})

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCSVTransactionRepository_MissingFileIsEmpty(t *testing.T) {
	repo := NewCSVTransactionRepository(log.Discard())

	got, err := repo.GetTransactions(context.Background(), domain.LedgerFilter{
		Source: filepath.Join(t.TempDir(), "nope.csv"),
	})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCSVTransactionRepository_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	repo := NewCSVTransactionRepository(log.Discard())
	ctx := context.Background()
	filter := domain.LedgerFilter{Source: path}

	txs := []domain.Transaction{
		{Date: "2024-03-04", Category: "food", Description: "lunch", Amount: 10.5},
		{Date: "2024-03-05", Category: "rent", Description: "flat @Rome", Amount: 800},
	}
	require.NoError(t, repo.SaveTransactions(ctx, filter, txs))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,category,text,amount\n2024-03-04,food,lunch,10.50\n2024-03-05,rent,flat @Rome,800.00\n", string(raw))

	got, err := repo.GetTransactions(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, txs, got)
}

func TestCSVTransactionRepository_SaveRejectsUnstorableRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,category,text,amount\n2024-03-04,food,lunch,10.00\n"), 0o644))
	repo := NewCSVTransactionRepository(log.Discard())

	err := repo.SaveTransactions(context.Background(), domain.LedgerFilter{Source: path}, []domain.Transaction{
		{Date: "2024-03-04", Category: "food", Description: "lunch", Amount: 10},
		{Date: "2024-03-05", Category: "food", Description: "fish, chips", Amount: 12},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTransaction)
	assert.ErrorContains(t, err, "row 2")
	raw, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "date,category,text,amount\n2024-03-04,food,lunch,10.00\n", string(raw), "file is left untouched")
}

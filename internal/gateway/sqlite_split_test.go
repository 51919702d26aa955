package gateway

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/log"
)

func TestSQLiteSplitRepository_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	repo, err := NewSQLiteSplitRepository(path, log.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	empty, err := repo.GetSplitState(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Members)
	assert.Empty(t, empty.Expenses)
	assert.Empty(t, empty.Settlements)

	state := &domain.SplitState{
		Members: []domain.SplitMember{{Name: "carol", Balance: 0}, {Name: "alice", Balance: 10}, {Name: "bob", Balance: -10}},
		Expenses: []domain.SplitExpense{
			{Date: "2024-03-04", Description: "pizza", Amount: 30, Payer: "alice", Shares: []domain.ExpenseShare{
				{Name: "alice", Amount: 15}, {Name: "bob", Amount: 15},
			}},
			{Date: "2024-03-06", Description: "", Amount: 4.5, Payer: "bob", Shares: []domain.ExpenseShare{
				{Name: "bob", Amount: 4.5},
			}},
		},
		Settlements: []domain.Settlement{{Date: "2024-03-05", From: "bob", To: "alice", Amount: 5}},
	}
	require.NoError(t, repo.SaveSplitState(ctx, state))
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteSplitRepository(path, log.Discard())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetSplitState(ctx)
	require.NoError(t, err)
	assert.Equal(t, state, got)

	state.Members = state.Members[1:]
	state.Expenses = nil
	require.NoError(t, reopened.SaveSplitState(ctx, state))
	got, err = reopened.GetSplitState(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.SplitMember{{Name: "alice", Balance: 10}, {Name: "bob", Balance: -10}}, got.Members)
	assert.Empty(t, got.Expenses, "save replaces the previous state")
	assert.Len(t, got.Settlements, 1)
}

func TestSQLiteSplitRepository_SharesLedgerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ledger, err := NewSQLiteTransactionRepository(path, log.Discard())
	require.NoError(t, err)
	defer ledger.Close()
	split, err := NewSQLiteSplitRepository(path, log.Discard())
	require.NoError(t, err)
	defer split.Close()

	ctx := context.Background()
	require.NoError(t, ledger.SaveTransactions(ctx, domain.LedgerFilter{Owner: "alice"}, []domain.Transaction{
		{Date: "2024-03-04", Category: "food", Description: "lunch", Amount: 10},
	}))
	require.NoError(t, split.SaveSplitState(ctx, &domain.SplitState{Members: []domain.SplitMember{{Name: "alice"}}}))

	txs, err := ledger.GetTransactions(ctx, domain.LedgerFilter{})
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

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

func newTestLedger(t *testing.T) (*SQLiteTransactionRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "ledger.db")
	repo, err := NewSQLiteTransactionRepository(path, log.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func TestSQLiteTransactionRepository_OwnerFilter(t *testing.T) {
	repo, _ := newTestLedger(t)
	ctx := context.Background()

	alice := []domain.Transaction{
		{Date: "2024-03-04", Category: "food", Description: "lunch", Amount: 10.5},
		{Date: "2024-03-05", Category: "rent", Description: "flat @Rome", Amount: 800},
	}
	bob := []domain.Transaction{
		{Date: "2024-03-04", Category: "travel", Description: "train", Amount: 42},
	}
	require.NoError(t, repo.SaveTransactions(ctx, domain.LedgerFilter{Owner: "alice"}, alice))
	require.NoError(t, repo.SaveTransactions(ctx, domain.LedgerFilter{Owner: "bob"}, bob))

	got, err := repo.GetTransactions(ctx, domain.LedgerFilter{Owner: "alice"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "lunch", got[0].Description)
	assert.Equal(t, "flat @Rome", got[1].Description)
	assert.Equal(t, "alice", got[1].Owner)
	assert.InDelta(t, 800.0, got[1].Amount, 1e-9)

	all, err := repo.GetTransactions(ctx, domain.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "bob", all[2].Owner)

	none, err := repo.GetTransactions(ctx, domain.LedgerFilter{Owner: "carol"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteTransactionRepository_ReopenKeepsRows(t *testing.T) {
	repo, path := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveTransactions(ctx, domain.LedgerFilter{Owner: "alice"}, []domain.Transaction{
		{Date: "2024-03-04", Category: "food", Description: "lunch", Amount: 10},
	}))
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteTransactionRepository(path, log.Discard())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetTransactions(ctx, domain.LedgerFilter{Owner: "alice"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

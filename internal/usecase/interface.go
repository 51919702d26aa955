package usecase

import (
	"context"

	"ledgerguard/internal/domain"
)

// TransactionRepository defines the interface for reading and writing ledger data.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mock_usecase -source=interface.go
type TransactionRepository interface {
	GetTransactions(ctx context.Context, filter domain.LedgerFilter) ([]domain.Transaction, error)
	SaveTransactions(ctx context.Context, filter domain.LedgerFilter, txs []domain.Transaction) error
}

// Analyzer runs fraud detection over a batch of transactions.
type Analyzer interface {
	Analyze(ctx context.Context, txs []domain.Transaction) ([]domain.Warning, error)
}

// SplitRepository loads and stores the expense splitter's state.
type SplitRepository interface {
	GetSplitState(ctx context.Context) (*domain.SplitState, error)
	SaveSplitState(ctx context.Context, state *domain.SplitState) error
}

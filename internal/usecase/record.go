package usecase

import (
	"context"
	"fmt"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/log"
)

// RecordUseCase appends single transactions to a ledger.
type RecordUseCase struct {
	repo   TransactionRepository
	logger *log.Logger
}

// NewRecordUseCase creates a new instance of the usecase.
func NewRecordUseCase(repo TransactionRepository, logger *log.Logger) *RecordUseCase {
	return &RecordUseCase{repo: repo, logger: logger.WithComponent(log.ComponentLedger)}
}

// Add validates tx, appends it to the ledger selected by filter and saves the
// ledger back. It returns the number of rows in the saved ledger. Rows the
// repository dropped on load are not written back.
func (uc *RecordUseCase) Add(ctx context.Context, filter domain.LedgerFilter, tx domain.Transaction) (int, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	transactions, err := uc.repo.GetTransactions(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("could not get transactions: %w", err)
	}
	transactions = append(transactions, tx)

	if err := uc.repo.SaveTransactions(ctx, filter, transactions); err != nil {
		uc.logger.ErrorContext(ctx, "Failed to save ledger",
			log.NewFields().WithLedger(filter.Source, filter.Owner).WithOperation(log.OpSave).WithError(err).ToSlice()...)
		return 0, fmt.Errorf("could not save transactions: %w", err)
	}

	uc.logger.InfoContext(ctx, "Recorded transaction",
		log.FieldSource, filter.Source,
		log.FieldCount, len(transactions))
	return len(transactions), nil
}

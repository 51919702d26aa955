package usecase

import (
	"context"
	"fmt"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/log"
)

// ImportUseCase copies a ledger from one repository into another, typically
// a per-user CSV file into the shared SQLite ledger.
type ImportUseCase struct {
	from   TransactionRepository
	to     TransactionRepository
	logger *log.Logger
}

// NewImportUseCase creates a new instance of the usecase.
func NewImportUseCase(from, to TransactionRepository, logger *log.Logger) *ImportUseCase {
	return &ImportUseCase{from: from, to: to, logger: logger.WithComponent(log.ComponentImport)}
}

// Import reads rows selected by src and appends them under dst. It returns
// the number of rows written. An empty source writes nothing.
func (uc *ImportUseCase) Import(ctx context.Context, src, dst domain.LedgerFilter) (int, error) {
	transactions, err := uc.from.GetTransactions(ctx, src)
	if err != nil {
		return 0, fmt.Errorf("could not get transactions: %w", err)
	}
	if len(transactions) == 0 {
		uc.logger.InfoContext(ctx, "Nothing to import", log.FieldSource, src.Source)
		return 0, nil
	}

	if err := uc.to.SaveTransactions(ctx, dst, transactions); err != nil {
		uc.logger.ErrorContext(ctx, "Import failed",
			log.NewFields().WithLedger(dst.Source, dst.Owner).WithOperation(log.OpSave).WithError(err).ToSlice()...)
		return 0, fmt.Errorf("could not save transactions: %w", err)
	}

	uc.logger.InfoContext(ctx, "Imported ledger",
		log.FieldSource, src.Source,
		log.FieldOwner, dst.Owner,
		log.FieldCount, len(transactions))
	return len(transactions), nil
}

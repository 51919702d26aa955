package usecase

import (
	"context"
	"fmt"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/log"
	"ledgerguard/internal/report"
)

// ReportUseCase produces the spending summary for a ledger.
type ReportUseCase struct {
	repo   TransactionRepository
	logger *log.Logger
}

// NewReportUseCase creates a new instance of the usecase.
func NewReportUseCase(repo TransactionRepository, logger *log.Logger) *ReportUseCase {
	return &ReportUseCase{repo: repo, logger: logger.WithComponent(log.ComponentReport)}
}

// Summarize loads the ledger selected by filter and totals it.
func (uc *ReportUseCase) Summarize(ctx context.Context, filter domain.LedgerFilter) (*domain.SpendingReport, error) {
	transactions, err := uc.repo.GetTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("could not get transactions: %w", err)
	}

	rep := report.Summarize(filter.Source, transactions)
	uc.logger.DebugContext(ctx, "Summary built",
		log.FieldSource, filter.Source,
		log.FieldCount, len(transactions))
	return rep, nil
}

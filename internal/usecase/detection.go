package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/log"
)

// DetectionUseCase loads a ledger and runs fraud detection over it.
type DetectionUseCase struct {
	repo     TransactionRepository
	analyzer Analyzer
	logger   *log.Logger
}

// NewDetectionUseCase creates a new instance of the usecase.
func NewDetectionUseCase(repo TransactionRepository, analyzer Analyzer, logger *log.Logger) *DetectionUseCase {
	return &DetectionUseCase{
		repo:     repo,
		analyzer: analyzer,
		logger:   logger.WithComponent(log.ComponentDetection),
	}
}

// Detect scans the ledger selected by filter.
//
// A load failure returns a nil report. An analysis failure returns the
// report (with no warnings and Error set) together with the analyzer's
// error unwrapped, so callers can render the outcome.
func (uc *DetectionUseCase) Detect(ctx context.Context, filter domain.LedgerFilter) (*domain.FraudReport, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := uc.logger.With(log.FieldRunID, runID)

	transactions, err := uc.repo.GetTransactions(ctx, filter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load ledger",
			log.NewFields().WithLedger(filter.Source, filter.Owner).WithOperation(log.OpLoad).WithError(err).ToSlice()...)
		return nil, fmt.Errorf("could not get transactions: %w", err)
	}

	report := &domain.FraudReport{
		RunID:            runID,
		Source:           filter.Source,
		Owner:            filter.Owner,
		TransactionCount: len(transactions),
		Warnings:         make([]domain.Warning, 0),
	}

	warnings, err := uc.analyzer.Analyze(ctx, transactions)
	if err != nil {
		// The caller prints the diagnostic; keep the log quiet at default levels.
		logger.DebugContext(ctx, "Analysis did not complete",
			log.NewFields().WithLedger(filter.Source, filter.Owner).WithOperation(log.OpAnalyze).WithError(err).ToSlice()...)
		report.Error = err.Error()
		return report, err
	}
	report.Warnings = append(report.Warnings, warnings...)

	logger.InfoContext(ctx, "Scan finished",
		log.FieldSource, filter.Source,
		log.FieldCount, report.TransactionCount,
		log.FieldWarnings, len(report.Warnings),
		log.FieldDuration, time.Since(started).Milliseconds())

	return report, nil
}

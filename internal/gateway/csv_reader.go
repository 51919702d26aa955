package gateway

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/log"
)

// CSVHeader is the header row written to and skipped in ledger files.
var CSVHeader = []string{"date", "category", "text", "amount"}

// errSkipRow marks a ledger row that is dropped instead of failing the load.
var errSkipRow = errors.New("row skipped")

// CSVTransactionRepository implements the TransactionRepository interface for CSV files.
type CSVTransactionRepository struct {
	logger *log.Logger
}

// NewCSVTransactionRepository creates a new repository instance.
func NewCSVTransactionRepository(logger *log.Logger) *CSVTransactionRepository {
	return &CSVTransactionRepository{logger: logger.WithComponent(log.ComponentCSV)}
}

// GetTransactions reads a ledger file of date,category,text,amount rows.
// A missing file is an empty ledger. Rows that are short, have over-long or
// empty fields, or an unreadable amount are skipped.
func (r *CSVTransactionRepository) GetTransactions(ctx context.Context, filter domain.LedgerFilter) ([]domain.Transaction, error) {
	file, err := os.Open(filter.Source)
	if errors.Is(err, os.ErrNotExist) {
		r.logger.InfoContext(ctx, "Ledger file not found, starting empty", log.FieldSource, filter.Source)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file %s: %w", filter.Source, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	// Skip header
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header from %s: %w", filter.Source, err)
	}

	var transactions []domain.Transaction
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", filter.Source, err)
		}

		tx, err := parseRecord(record)
		if errors.Is(err, errSkipRow) {
			line, _ := reader.FieldPos(0)
			r.logger.DebugContext(ctx, "Skipping ledger row", log.FieldLine, line, log.FieldReason, err.Error())
			skipped++
			continue
		}
		tx.Owner = filter.Owner
		transactions = append(transactions, tx)
	}

	r.logger.InfoContext(ctx, "Loaded ledger",
		log.FieldSource, filter.Source,
		log.FieldCount, len(transactions),
		log.FieldSkipped, skipped)

	return transactions, nil
}

func parseRecord(record []string) (domain.Transaction, error) {
	if len(record) < 4 {
		return domain.Transaction{}, fmt.Errorf("%d fields: %w", len(record), errSkipRow)
	}

	tx := domain.Transaction{
		Date:        record[0],
		Category:    record[1],
		Description: record[2],
	}
	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %w", errSkipRow, err)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("could not parse amount '%s': %w", record[3], errSkipRow)
	}
	tx.Amount = amount

	return tx, nil
}

// SaveTransactions rewrites the ledger file with a header and one row per
// transaction. Rows that fail Validate abort the save before the file is touched.
func (r *CSVTransactionRepository) SaveTransactions(ctx context.Context, filter domain.LedgerFilter, txs []domain.Transaction) error {
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	file, err := os.Create(filter.Source)
	if err != nil {
		return fmt.Errorf("failed to create ledger file %s: %w", filter.Source, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, strings.Join(CSVHeader, ","))
	for _, tx := range txs {
		fmt.Fprintf(w, "%s,%s,%s,%.2f\n", tx.Date, tx.Category, tx.Description, tx.Amount)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write ledger file %s: %w", filter.Source, err)
	}

	r.logger.InfoContext(ctx, "Saved ledger", log.FieldSource, filter.Source, log.FieldCount, len(txs))
	return nil
}

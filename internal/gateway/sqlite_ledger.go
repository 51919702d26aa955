package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteTransactionRepository is the shared ledger: one table holding every
// owner's rows. Reads can be narrowed to a single owner.
type SQLiteTransactionRepository struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

// NewSQLiteTransactionRepository opens (creating if needed) the ledger at
// dbPath and applies pending migrations.
func NewSQLiteTransactionRepository(dbPath string, logger *log.Logger) (*SQLiteTransactionRepository, error) {
	logger = logger.WithComponent(log.ComponentStorage)
	db, err := openDatabase(dbPath, logger)
	if err != nil {
		return nil, err
	}
	return &SQLiteTransactionRepository{db: db, path: dbPath, logger: logger}, nil
}

// openDatabase opens the SQLite file at dbPath and migrates it to the
// latest schema.
func openDatabase(dbPath string, logger *log.Logger) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		logger.Error("Migration failed",
			log.NewFields().WithLedger(dbPath, "").WithOperation(log.OpMigrate).WithError(err).ToSlice()...)
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// Close releases the database handle.
func (r *SQLiteTransactionRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// GetTransactions returns ledger rows in insertion order. An empty
// filter.Owner returns every owner's rows.
func (r *SQLiteTransactionRepository) GetTransactions(ctx context.Context, filter domain.LedgerFilter) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT owner, date, category, description, amount
		FROM transactions
		WHERE ? = '' OR owner = ?
		ORDER BY id`, filter.Owner, filter.Owner)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.Owner, &tx.Date, &tx.Category, &tx.Description, &tx.Amount); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	r.logger.InfoContext(ctx, "Loaded ledger",
		log.FieldSource, r.path,
		log.FieldOwner, filter.Owner,
		log.FieldCount, len(transactions))

	return transactions, nil
}

// SaveTransactions appends txs to the shared ledger under filter.Owner in a
// single transaction.
func (r *SQLiteTransactionRepository) SaveTransactions(ctx context.Context, filter domain.LedgerFilter, txs []domain.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (owner, date, category, description, amount)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		if _, err := stmt.ExecContext(ctx, filter.Owner, tx.Date, tx.Category, tx.Description, tx.Amount); err != nil {
			return fmt.Errorf("insert transaction %s %s: %w", tx.Date, tx.Description, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.logger.InfoContext(ctx, "Saved ledger rows",
		log.FieldSource, r.path,
		log.FieldOwner, filter.Owner,
		log.FieldCount, len(txs))

	return nil
}

package gateway

import (
	"context"
	"database/sql"
	"fmt"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/log"
)

// SQLiteSplitRepository keeps the expense splitter's members, expenses and
// settlements next to the shared ledger.
type SQLiteSplitRepository struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

// NewSQLiteSplitRepository opens (creating if needed) the database at dbPath
// and applies pending migrations.
func NewSQLiteSplitRepository(dbPath string, logger *log.Logger) (*SQLiteSplitRepository, error) {
	logger = logger.WithComponent(log.ComponentStorage)
	db, err := openDatabase(dbPath, logger)
	if err != nil {
		return nil, err
	}
	return &SQLiteSplitRepository{db: db, path: dbPath, logger: logger}, nil
}

// Close releases the database handle.
func (r *SQLiteSplitRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// GetSplitState loads the whole splitter state in insertion order.
func (r *SQLiteSplitRepository) GetSplitState(ctx context.Context) (*domain.SplitState, error) {
	state := &domain.SplitState{}

	rows, err := r.db.QueryContext(ctx, `SELECT name, balance FROM split_members ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	for rows.Next() {
		var m domain.SplitMember
		if err := rows.Scan(&m.Name, &m.Balance); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan member: %w", err)
		}
		state.Members = append(state.Members, m)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT e.id, e.date, e.description, e.amount, e.payer, s.name, s.amount
		FROM split_expenses e
		LEFT JOIN split_shares s ON s.expense_id = e.id
		ORDER BY e.id, s.position`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	lastID := int64(-1)
	for rows.Next() {
		var (
			id          int64
			e           domain.SplitExpense
			shareName   sql.NullString
			shareAmount sql.NullFloat64
		)
		if err := rows.Scan(&id, &e.Date, &e.Description, &e.Amount, &e.Payer, &shareName, &shareAmount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if id != lastID {
			e.Shares = make([]domain.ExpenseShare, 0)
			state.Expenses = append(state.Expenses, e)
			lastID = id
		}
		if shareName.Valid {
			cur := &state.Expenses[len(state.Expenses)-1]
			cur.Shares = append(cur.Shares, domain.ExpenseShare{Name: shareName.String, Amount: shareAmount.Float64})
		}
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, `SELECT date, from_member, to_member, amount FROM split_settlements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query settlements: %w", err)
	}
	for rows.Next() {
		var s domain.Settlement
		if err := rows.Scan(&s.Date, &s.From, &s.To, &s.Amount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan settlement: %w", err)
		}
		state.Settlements = append(state.Settlements, s)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("iterate settlements: %w", err)
	}

	r.logger.DebugContext(ctx, "Loaded splitter state",
		log.FieldSource, r.path,
		log.FieldCount, len(state.Members))
	return state, nil
}

// SaveSplitState replaces the stored state with state in one transaction.
func (r *SQLiteSplitRepository) SaveSplitState(ctx context.Context, state *domain.SplitState) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, table := range []string{"split_shares", "split_expenses", "split_members", "split_settlements"} {
		if _, err := dbTx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, m := range state.Members {
		if _, err := dbTx.ExecContext(ctx,
			`INSERT INTO split_members (name, balance) VALUES (?, ?)`, m.Name, m.Balance); err != nil {
			return fmt.Errorf("insert member %s: %w", m.Name, err)
		}
	}

	for _, e := range state.Expenses {
		res, err := dbTx.ExecContext(ctx,
			`INSERT INTO split_expenses (date, description, amount, payer) VALUES (?, ?, ?, ?)`,
			e.Date, e.Description, e.Amount, e.Payer)
		if err != nil {
			return fmt.Errorf("insert expense %s %s: %w", e.Date, e.Description, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("expense id: %w", err)
		}
		for pos, s := range e.Shares {
			if _, err := dbTx.ExecContext(ctx,
				`INSERT INTO split_shares (expense_id, position, name, amount) VALUES (?, ?, ?, ?)`,
				id, pos, s.Name, s.Amount); err != nil {
				return fmt.Errorf("insert share for %s: %w", s.Name, err)
			}
		}
	}

	for _, s := range state.Settlements {
		if _, err := dbTx.ExecContext(ctx,
			`INSERT INTO split_settlements (date, from_member, to_member, amount) VALUES (?, ?, ?, ?)`,
			s.Date, s.From, s.To, s.Amount); err != nil {
			return fmt.Errorf("insert settlement %s: %w", s.Date, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.logger.InfoContext(ctx, "Saved splitter state",
		log.FieldSource, r.path,
		log.FieldCount, len(state.Members))
	return nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

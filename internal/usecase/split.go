package usecase

import (
	"context"
	"fmt"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/log"
	"ledgerguard/internal/splitter"
)

// SplitUseCase runs expense splitter operations against stored state. Every
// change loads the state, applies one operation and saves it back.
type SplitUseCase struct {
	repo   SplitRepository
	logger *log.Logger
}

// NewSplitUseCase creates a new instance of the usecase.
func NewSplitUseCase(repo SplitRepository, logger *log.Logger) *SplitUseCase {
	return &SplitUseCase{repo: repo, logger: logger.WithComponent(log.ComponentSplitter)}
}

// State returns the stored splitter state.
func (uc *SplitUseCase) State(ctx context.Context) (*domain.SplitState, error) {
	state, err := uc.repo.GetSplitState(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get splitter state: %w", err)
	}
	return state, nil
}

// AddMember adds a member with a zero balance.
func (uc *SplitUseCase) AddMember(ctx context.Context, name string) error {
	return uc.apply(ctx, "add-member", func(b *splitter.Book) error {
		return b.AddMember(name)
	})
}

// RemoveMember removes a member whose balance is settled.
func (uc *SplitUseCase) RemoveMember(ctx context.Context, name string) error {
	return uc.apply(ctx, "remove-member", func(b *splitter.Book) error {
		return b.RemoveMember(name)
	})
}

// RecordExpense splits an expense and updates balances.
func (uc *SplitUseCase) RecordExpense(ctx context.Context, req splitter.ExpenseRequest) (domain.SplitExpense, error) {
	var expense domain.SplitExpense
	err := uc.apply(ctx, "expense", func(b *splitter.Book) error {
		var err error
		expense, err = b.RecordExpense(req)
		return err
	})
	return expense, err
}

// Settle records a direct repayment between two members.
func (uc *SplitUseCase) Settle(ctx context.Context, s domain.Settlement) error {
	return uc.apply(ctx, "settle", func(b *splitter.Book) error {
		return b.Settle(s)
	})
}

// apply leaves stored state untouched when op fails.
func (uc *SplitUseCase) apply(ctx context.Context, op string, fn func(*splitter.Book) error) error {
	state, err := uc.State(ctx)
	if err != nil {
		return err
	}

	book := splitter.New(state)
	if err := fn(book); err != nil {
		uc.logger.DebugContext(ctx, "Splitter operation rejected", log.FieldOperation, op, log.FieldReason, err.Error())
		return err
	}

	if err := uc.repo.SaveSplitState(ctx, book.State()); err != nil {
		uc.logger.ErrorContext(ctx, "Failed to save splitter state",
			log.NewFields().WithOperation(op).WithError(err).ToSlice()...)
		return fmt.Errorf("could not save splitter state: %w", err)
	}

	uc.logger.InfoContext(ctx, "Splitter updated", log.FieldOperation, op)
	return nil
}

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerguard/internal/domain"
	"ledgerguard/internal/log"
	"ledgerguard/internal/splitter"
	"ledgerguard/internal/usecase"
	mock_usecase "ledgerguard/internal/usecase/mocks"
)

func TestSplitUseCase_RecordExpense(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_usecase.NewMockSplitRepository(ctrl)
	repo.EXPECT().GetSplitState(gomock.Any()).Return(&domain.SplitState{
		Members: []domain.SplitMember{{Name: "alice"}, {Name: "bob"}},
	}, nil)
	repo.EXPECT().SaveSplitState(gomock.Any(), &domain.SplitState{
		Members: []domain.SplitMember{{Name: "alice", Balance: 20}, {Name: "bob", Balance: -20}},
		Expenses: []domain.SplitExpense{{
			Date: "2024-03-04", Description: "train", Amount: 40, Payer: "alice",
			Shares: []domain.ExpenseShare{{Name: "alice", Amount: 20}, {Name: "bob", Amount: 20}},
		}},
	}).Return(nil)

	uc := usecase.NewSplitUseCase(repo, log.Discard())
	expense, err := uc.RecordExpense(context.Background(), splitter.ExpenseRequest{
		Payer: "alice", Amount: 40, Date: "2024-03-04", Description: "train",
		Mode: domain.SplitEqual, Participants: []string{"alice", "bob"},
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", expense.Payer)
	assert.Len(t, expense.Shares, 2)
}

func TestSplitUseCase_Operations(t *testing.T) {
	twoMembers := func() *domain.SplitState {
		return &domain.SplitState{Members: []domain.SplitMember{{Name: "alice", Balance: 5}, {Name: "bob", Balance: -5}}}
	}

	tests := []struct {
		name     string
		run      func(uc *usecase.SplitUseCase) error
		loadErr  error
		wantSave *domain.SplitState
		saveErr  error
		wantIs   error
		wantErr  string
	}{
		{
			name:     "add member",
			run:      func(uc *usecase.SplitUseCase) error { return uc.AddMember(context.Background(), "carol") },
			wantSave: &domain.SplitState{Members: []domain.SplitMember{{Name: "alice", Balance: 5}, {Name: "bob", Balance: -5}, {Name: "carol"}}},
		},
		{
			name:   "duplicate member is not saved",
			run:    func(uc *usecase.SplitUseCase) error { return uc.AddMember(context.Background(), "bob") },
			wantIs: splitter.ErrMemberExists,
		},
		{
			name:   "unsettled member stays",
			run:    func(uc *usecase.SplitUseCase) error { return uc.RemoveMember(context.Background(), "bob") },
			wantIs: splitter.ErrUnsettledBalance,
		},
		{
			name: "settle",
			run: func(uc *usecase.SplitUseCase) error {
				return uc.Settle(context.Background(), domain.Settlement{Date: "2024-03-05", From: "bob", To: "alice", Amount: 5})
			},
			wantSave: &domain.SplitState{
				Members:     []domain.SplitMember{{Name: "alice", Balance: 0}, {Name: "bob", Balance: 0}},
				Settlements: []domain.Settlement{{Date: "2024-03-05", From: "bob", To: "alice", Amount: 5}},
			},
		},
		{
			name:    "load failure",
			run:     func(uc *usecase.SplitUseCase) error { return uc.AddMember(context.Background(), "carol") },
			loadErr: errors.New("locked"),
			wantErr: "could not get splitter state: locked",
		},
		{
			name:     "save failure",
			run:      func(uc *usecase.SplitUseCase) error { return uc.AddMember(context.Background(), "carol") },
			wantSave: &domain.SplitState{Members: []domain.SplitMember{{Name: "alice", Balance: 5}, {Name: "bob", Balance: -5}, {Name: "carol"}}},
			saveErr:  errors.New("read-only"),
			wantErr:  "could not save splitter state: read-only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock_usecase.NewMockSplitRepository(ctrl)
			if tt.loadErr != nil {
				repo.EXPECT().GetSplitState(gomock.Any()).Return(nil, tt.loadErr)
			} else {
				repo.EXPECT().GetSplitState(gomock.Any()).Return(twoMembers(), nil)
			}
			if tt.wantSave != nil {
				repo.EXPECT().SaveSplitState(gomock.Any(), tt.wantSave).Return(tt.saveErr)
			}

			err := tt.run(usecase.NewSplitUseCase(repo, log.Discard()))

			switch {
			case tt.wantIs != nil:
				assert.ErrorIs(t, err, tt.wantIs)
			case tt.wantErr != "":
				assert.EqualError(t, err, tt.wantErr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
)

func TestApplyCompleted_PublishesOnlyWhenApplied(t *testing.T) {
	f := newFixture(t)
	p := profile(models.RoleBasic, 0)
	tx := pendingTx(p.ID, models.KindDeposit, 2500, models.ProviderYooKassa, "pay_1")
	completed := *tx
	completed.Status = models.StatusCompleted
	after := int64(2500)
	completed.BalanceAfter = &after

	gomock.InOrder(
		f.repo.EXPECT().CompleteTransaction(gomock.Any(), tx.ID).
			Return(&models.LedgerResult{Transaction: &completed, Balance: 2500, Applied: true}, nil),
		f.repo.EXPECT().CompleteTransaction(gomock.Any(), tx.ID).
			Return(&models.LedgerResult{Transaction: &completed, Balance: 2500}, nil),
	)
	f.gw.EXPECT().PublishTransactionEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.TransactionEvent) error {
			assert.Equal(t, models.EventTransactionCompleted, event.Type)
			assert.Equal(t, p.ID, event.UserID)
			return nil
		}).Times(1)
	f.gw.EXPECT().PublishNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n models.FinanceNotification) error {
			assert.Equal(t, "Balance topped up", n.Title)
			return errors.New("nsqd unavailable")
		}).Times(1)

	first, err := f.uc.ApplyCompleted(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.True(t, first.Applied)

	second, err := f.uc.ApplyCompleted(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, int64(2500), second.Balance)
}

func TestApplyFailed_SettledTransactionUnchanged(t *testing.T) {
	p := profile(models.RoleBasic, 0)
	repo := newMemRepo(p)
	f := newMemFixture(t, repo)
	f.allowEvents()
	tx := pendingTx(p.ID, models.KindDeposit, 2500, models.ProviderYooKassa, "pay_1")
	repo.put(tx)

	_, err := f.uc.ApplyCompleted(context.Background(), tx.ID)
	require.NoError(t, err)

	got, err := f.uc.ApplyFailed(context.Background(), tx.ID, models.ReasonExpired)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Empty(t, got.FailureReason)
	assert.Equal(t, int64(2500), repo.balance(p.ID))
}

func TestApplyCompleted_InsufficientFundsReportsCurrentBalance(t *testing.T) {
	p := profile(models.RoleBasic, 1000)
	repo := newMemRepo(p)
	f := newMemFixture(t, repo)
	f.allowEvents()
	tx := pendingTx(p.ID, models.KindPurchase, 2000, models.ProviderBalance, "")
	tx.BalanceBefore = 0
	repo.put(tx)

	result, err := f.uc.ApplyCompleted(context.Background(), tx.ID)

	assert.ErrorIs(t, err, billing.ErrInsufficientFunds)
	require.NotNil(t, result)
	assert.Equal(t, models.StatusFailed, result.Transaction.Status)
	assert.Equal(t, models.ReasonInsufficientFunds, result.Transaction.FailureReason)
	assert.False(t, result.Applied)
	assert.Equal(t, int64(1000), result.Balance)
}

func TestApplyCompleted_OutOfOrderCompletionKeepsChain(t *testing.T) {
	p := profile(models.RoleBasic, 0)
	repo := newMemRepo(p)
	f := newMemFixture(t, repo)
	f.allowEvents()

	first := pendingTx(p.ID, models.KindDeposit, 500, models.ProviderYooKassa, "pay_a")
	first.CreatedAt = fixedNow.Add(-2 * time.Hour)
	second := pendingTx(p.ID, models.KindDeposit, 300, models.ProviderYooKassa, "pay_b")
	second.CreatedAt = fixedNow.Add(-time.Hour)
	repo.put(first)
	repo.put(second)

	_, err := f.uc.ApplyCompleted(context.Background(), second.ID)
	require.NoError(t, err)
	_, err = f.uc.ApplyCompleted(context.Background(), first.ID)
	require.NoError(t, err)

	b := repo.tx(second.ID)
	assert.Equal(t, int64(0), b.BalanceBefore)
	assert.Equal(t, int64(300), *b.BalanceAfter)
	a := repo.tx(first.ID)
	assert.Equal(t, int64(300), a.BalanceBefore)
	assert.Equal(t, int64(800), *a.BalanceAfter)
	assert.True(t, a.CompletedAt.After(*b.CompletedAt))
	assert.Equal(t, int64(800), repo.balance(p.ID))

	assertLedgerChain(t, repo, p.ID, 0)
}

func TestApplyCompleted_UnknownTransaction(t *testing.T) {
	p := profile(models.RoleBasic, 0)
	f := newMemFixture(t, newMemRepo(p))

	_, err := f.uc.ApplyCompleted(context.Background(), pendingTx(p.ID, models.KindDeposit, 1, "", "").ID)

	assert.ErrorIs(t, err, billing.ErrTransactionNotFound)
}

// TestLedger_RandomizedHistory settles a random mix of credits and debits, each
// delivered several times concurrently, and checks the ledger invariants
func TestLedger_RandomizedHistory(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kinds := []models.TransactionKind{
		models.KindDeposit, models.KindPurchase, models.KindBonus,
		models.KindFee, models.KindRefund, models.KindWithdrawal,
	}

	for round := 0; round < 20; round++ {
		p := profile(models.RoleBasic, int64(rng.Intn(5000)))
		initial := p.Balance
		repo := newMemRepo(p)
		f := newMemFixture(t, repo)
		f.allowEvents()

		var txs []*models.Transaction
		for i := 0; i < 30; i++ {
			tx := pendingTx(p.ID, kinds[rng.Intn(len(kinds))], int64(1+rng.Intn(3000)), models.ProviderManual, "")
			repo.put(tx)
			txs = append(txs, tx)
		}

		var wg sync.WaitGroup
		for _, tx := range txs {
			for d := 0; d < 3; d++ {
				wg.Add(1)
				go func(tx *models.Transaction, fail bool) {
					defer wg.Done()
					if fail {
						_, err := f.uc.ApplyFailed(context.Background(), tx.ID, models.ReasonDeclined)
						assert.NoError(t, err)
						return
					}
					_, err := f.uc.ApplyCompleted(context.Background(), tx.ID)
					if err != nil {
						assert.ErrorIs(t, err, billing.ErrInsufficientFunds)
					}
				}(tx, rng.Intn(10) == 0)
			}
		}
		wg.Wait()

		var sum int64
		for _, tx := range repo.all() {
			assert.NotEqual(t, models.StatusPending, tx.Status)
			switch tx.Status {
			case models.StatusCompleted:
				sum += tx.SignedAmount()
				require.NotNil(t, tx.BalanceAfter)
				assert.Equal(t, tx.BalanceBefore+tx.SignedAmount(), *tx.BalanceAfter)
				assert.GreaterOrEqual(t, *tx.BalanceAfter, int64(0))
			case models.StatusFailed:
				assert.Nil(t, tx.BalanceAfter)
			}
		}
		assert.Equal(t, initial+sum, repo.balance(p.ID), "round %d", round)
		assert.GreaterOrEqual(t, repo.balance(p.ID), int64(0))
		assertLedgerChain(t, repo, p.ID, initial)
	}
}

// assertLedgerChain walks a user's completed rows in completion order: each row
// starts where the previous one ended and the last one ends at the profile balance.
func assertLedgerChain(t *testing.T, repo *memRepo, userID uuid.UUID, opening int64) {
	t.Helper()
	var completed []*models.Transaction
	for _, tx := range repo.all() {
		if tx.UserID != userID || tx.Status != models.StatusCompleted {
			continue
		}
		require.NotNil(t, tx.CompletedAt)
		require.NotNil(t, tx.BalanceAfter)
		completed = append(completed, tx)
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].CompletedAt.Before(*completed[j].CompletedAt)
	})

	prev := opening
	for i, tx := range completed {
		assert.Equal(t, prev, tx.BalanceBefore, "row %d before", i)
		assert.Equal(t, prev+tx.SignedAmount(), *tx.BalanceAfter, "row %d after", i)
		prev = *tx.BalanceAfter
	}
	assert.Equal(t, prev, repo.balance(userID))
}

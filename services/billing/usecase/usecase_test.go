package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
	"github.com/thqlabel/thqlabel/services/billing/mocks"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *models.Config {
	return &models.Config{
		Billing: models.BillingConfig{
			BaseCurrency:      "RUB",
			AllowedCurrencies: []string{"RUB", "USD", "EUR"},
			SweepInterval:     5 * time.Minute,
			SweepMinAge:       10 * time.Minute,
			SweepBatchSize:    50,
			PendingTTL:        24 * time.Hour,
			WebhookLockTTL:    30 * time.Second,
			Rules: models.BillingRules{
				Providers: map[string]models.ProviderRule{
					models.ProviderBalance:  {Currency: "RUB", MinAmount: 1, Methods: []string{models.MethodBalance}},
					models.ProviderYooKassa: {Currency: "RUB", MinAmount: 10000, Methods: []string{models.MethodYooKassa, models.MethodSBP, models.MethodCardRU}},
					models.ProviderStripe:   {Currency: "USD", MinAmount: 50, Methods: []string{models.MethodCard}},
					models.ProviderLiqPay:   {Currency: "UAH", MinAmount: 100, Methods: []string{models.MethodLiqPay}},
				},
				Rates: map[string]string{"RUB": "1", "USD": "90", "EUR": "100"},
			},
		},
	}
}

type fixture struct {
	ctrl     *gomock.Controller
	repo     *mocks.MockBillingRepo
	gw       *mocks.MockBillingGW
	yookassa *mocks.MockPaymentProvider
	stripe   *mocks.MockPaymentProvider
	uc       *BillingUC
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		ctrl:     ctrl,
		repo:     mocks.NewMockBillingRepo(ctrl),
		gw:       mocks.NewMockBillingGW(ctrl),
		yookassa: mocks.NewMockPaymentProvider(ctrl),
		stripe:   mocks.NewMockPaymentProvider(ctrl),
	}
	f.yookassa.EXPECT().Name().Return(models.ProviderYooKassa).AnyTimes()
	f.stripe.EXPECT().Name().Return(models.ProviderStripe).AnyTimes()

	uc, err := NewBillingUC(testConfig(), f.repo, f.gw, logger.NewAuditLogger(io.Discard), f.yookassa, f.stripe)
	require.NoError(t, err)
	uc.now = func() time.Time { return fixedNow }
	f.uc = uc
	return f
}

// allowEvents accepts any number of published events and notifications
func (f *fixture) allowEvents() {
	f.gw.EXPECT().PublishTransactionEvent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.gw.EXPECT().PublishNotification(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func profile(role models.Role, balance int64) *models.Profile {
	return &models.Profile{
		ID:        uuid.New(),
		Email:     "artist@example.com",
		Role:      role,
		Balance:   balance,
		CreatedAt: fixedNow.Add(-24 * time.Hour),
	}
}

func pendingTx(userID uuid.UUID, kind models.TransactionKind, amount int64, provider, ref string) *models.Transaction {
	tx := &models.Transaction{
		ID:             uuid.New(),
		UserID:         userID,
		Kind:           kind,
		Amount:         amount,
		Currency:       "RUB",
		ChargeAmount:   amount,
		ChargeCurrency: "RUB",
		Status:         models.StatusPending,
		Description:    "Balance top-up",
		PaymentMethod:  provider,
		Provider:       provider,
		Metadata:       models.Metadata{},
		CreatedAt:      fixedNow.Add(-time.Hour),
		UpdatedAt:      fixedNow.Add(-time.Hour),
	}
	if ref != "" {
		tx.ProviderRef = &ref
	}
	return tx
}

// memRepo is an in-memory BillingRepo with the same conditional transitions
// as the SQL repository
type memRepo struct {
	mu          sync.Mutex
	txs         map[uuid.UUID]*models.Transaction
	profiles    map[uuid.UUID]*models.Profile
	locks       map[string]bool
	sweepOwner  string
	maintenance *models.MaintenanceState
	completions int
}

var _ billing.BillingRepo = (*memRepo)(nil)

func newMemRepo(profiles ...*models.Profile) *memRepo {
	r := &memRepo{
		txs:      make(map[uuid.UUID]*models.Transaction),
		profiles: make(map[uuid.UUID]*models.Profile),
		locks:    make(map[string]bool),
	}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func copyTx(tx *models.Transaction) *models.Transaction {
	c := *tx
	c.Metadata = models.Metadata{}
	for k, v := range tx.Metadata {
		c.Metadata[k] = v
	}
	return &c
}

func (r *memRepo) put(tx *models.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[tx.ID] = copyTx(tx)
}

func (r *memRepo) balance(userID uuid.UUID) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profiles[userID].Balance
}

func (r *memRepo) tx(id uuid.UUID) *models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyTx(r.txs[id])
}

func (r *memRepo) all() []*models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Transaction, 0, len(r.txs))
	for _, tx := range r.txs {
		out = append(out, copyTx(tx))
	}
	return out
}

func (r *memRepo) CreateTransaction(_ context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx.ProviderRef != nil {
		for _, existing := range r.txs {
			if existing.Provider == tx.Provider && existing.ProviderRef != nil && *existing.ProviderRef == *tx.ProviderRef {
				return billing.ErrDuplicateProviderRef
			}
		}
	}
	tx.CreatedAt, tx.UpdatedAt = fixedNow, fixedNow
	r.txs[tx.ID] = copyTx(tx)
	return nil
}

func (r *memRepo) GetTransaction(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok {
		return nil, billing.ErrTransactionNotFound
	}
	return copyTx(tx), nil
}

func (r *memRepo) GetTransactionByProviderRef(_ context.Context, provider, ref string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.txs {
		if tx.Provider == provider && tx.ProviderRef != nil && *tx.ProviderRef == ref {
			return copyTx(tx), nil
		}
	}
	return nil, billing.ErrTransactionNotFound
}

func (r *memRepo) SetSession(_ context.Context, id uuid.UUID, providerRef, sessionURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok || tx.Status != models.StatusPending {
		return billing.ErrTransactionNotFound
	}
	tx.ProviderRef, tx.SessionURL = &providerRef, sessionURL
	return nil
}

func (r *memRepo) ListTransactions(context.Context, models.TransactionFilter) ([]*models.Transaction, int, error) {
	return nil, 0, fmt.Errorf("not implemented")
}

func (r *memRepo) ListPendingBefore(_ context.Context, before time.Time, cursor *models.PendingCursor, limit int) ([]*models.Transaction, error) {
	txs := r.all()
	sort.Slice(txs, func(i, j int) bool { return pendingLess(txs[i].CreatedAt, txs[i].ID, txs[j].CreatedAt, txs[j].ID) })

	var out []*models.Transaction
	for _, tx := range txs {
		if tx.Status != models.StatusPending || !tx.CreatedAt.Before(before) {
			continue
		}
		if cursor != nil && !pendingLess(cursor.CreatedAt, cursor.ID, tx.CreatedAt, tx.ID) {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, tx)
	}
	return out, nil
}

func pendingLess(at time.Time, id uuid.UUID, bt time.Time, bid uuid.UUID) bool {
	if !at.Equal(bt) {
		return at.Before(bt)
	}
	return bytes.Compare(id[:], bid[:]) < 0
}

func (r *memRepo) MergeMetadata(_ context.Context, id uuid.UUID, patch models.Metadata) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok {
		return nil, billing.ErrTransactionNotFound
	}
	for k, v := range patch {
		tx.Metadata[k] = v
	}
	return copyTx(tx), nil
}

func (r *memRepo) DeleteTestTransactions(_ context.Context, ids []uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, id := range ids {
		if tx, ok := r.txs[id]; ok && tx.Status == models.StatusTest {
			delete(r.txs, id)
			n++
		}
	}
	return n, nil
}

func (r *memRepo) CompleteTransaction(_ context.Context, id uuid.UUID) (*models.LedgerResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok {
		return nil, billing.ErrTransactionNotFound
	}
	p := r.profiles[tx.UserID]
	if tx.Status != models.StatusPending {
		return &models.LedgerResult{Transaction: copyTx(tx), Balance: p.Balance}, nil
	}
	next := p.Balance + tx.SignedAmount()
	if next < 0 {
		return nil, billing.ErrInsufficientFunds
	}
	r.completions++
	completedAt := fixedNow.Add(time.Duration(r.completions) * time.Microsecond)
	tx.BalanceBefore = p.Balance
	p.Balance = next
	tx.BalanceAfter = &next
	tx.Status = models.StatusCompleted
	tx.CompletedAt = &completedAt
	return &models.LedgerResult{Transaction: copyTx(tx), Balance: next, Applied: true}, nil
}

func (r *memRepo) FailTransaction(_ context.Context, id uuid.UUID, reason string) (*models.Transaction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok {
		return nil, false, billing.ErrTransactionNotFound
	}
	if tx.Status != models.StatusPending {
		return copyTx(tx), false, nil
	}
	tx.Status, tx.FailureReason = models.StatusFailed, reason
	return copyTx(tx), true, nil
}

func (r *memRepo) GetProfile(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, billing.ErrProfileNotFound
	}
	c := *p
	return &c, nil
}

func (r *memRepo) SetBanned(_ context.Context, id uuid.UUID, banned bool, by uuid.UUID, reason string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, billing.ErrProfileNotFound
	}
	p.IsBanned, p.BanReason = banned, reason
	c := *p
	return &c, nil
}

func (r *memRepo) AcquireWebhookLock(_ context.Context, provider, ref string, _ time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := provider + ":" + ref
	if r.locks[key] {
		return false, nil
	}
	r.locks[key] = true
	return true, nil
}

func (r *memRepo) ReleaseWebhookLock(_ context.Context, provider, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, provider+":"+ref)
	return nil
}

func (r *memRepo) AcquireSweepLock(_ context.Context, owner string, _ time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sweepOwner != "" {
		return false, nil
	}
	r.sweepOwner = owner
	return true, nil
}

func (r *memRepo) ReleaseSweepLock(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sweepOwner == owner {
		r.sweepOwner = ""
	}
	return nil
}

func (r *memRepo) GetMaintenance(context.Context) (*models.MaintenanceState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maintenance == nil {
		return &models.MaintenanceState{}, nil
	}
	c := *r.maintenance
	return &c, nil
}

func (r *memRepo) SetMaintenance(_ context.Context, state *models.MaintenanceState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *state
	r.maintenance = &c
	return nil
}

// newMemFixture wires the use case to a memRepo instead of the repository mock
func newMemFixture(t *testing.T, repo *memRepo) *fixture {
	f := newFixture(t)
	f.uc.billingRepo = repo
	return f
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
)

func TestOwnerOnlyActions_RejectOtherRoles(t *testing.T) {
	for _, role := range []models.Role{models.RoleBasic, models.RoleExclusive, models.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			actor := profile(role, 0)
			target := profile(models.RoleBasic, 0)
			repo := newMemRepo(actor, target)
			f := newMemFixture(t, repo)
			ctx := context.Background()

			_, err := f.uc.BanUser(ctx, actor.ID, target.ID, "spam")
			assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
			_, err = f.uc.UnbanUser(ctx, actor.ID, target.ID)
			assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
			_, err = f.uc.Broadcast(ctx, actor.ID, models.BroadcastRequest{Title: "t", Message: "m"})
			assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
			_, err = f.uc.SetMaintenance(ctx, actor.ID, models.MaintenanceRequest{Enabled: true})
			assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
			_, err = f.uc.RunDiagnostics(ctx, actor.ID)
			assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

			state, _ := repo.GetMaintenance(ctx)
			assert.False(t, state.Enabled)
			stored, _ := repo.GetProfile(ctx, target.ID)
			assert.False(t, stored.IsBanned)
		})
	}
}

func TestBanUser(t *testing.T) {
	owner := profile(models.RoleOwner, 0)
	otherOwner := profile(models.RoleOwner, 0)
	target := profile(models.RoleBasic, 0)
	repo := newMemRepo(owner, otherOwner, target)
	f := newMemFixture(t, repo)
	ctx := context.Background()

	banned, err := f.uc.BanUser(ctx, owner.ID, target.ID, "  chargeback fraud ")
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)
	assert.Equal(t, "chargeback fraud", banned.BanReason)

	_, err = f.uc.GetBalance(ctx, target.ID)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = f.uc.BanUser(ctx, owner.ID, owner.ID, "")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.uc.BanUser(ctx, owner.ID, otherOwner.ID, "")
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	unbanned, err := f.uc.UnbanUser(ctx, owner.ID, target.ID)
	require.NoError(t, err)
	assert.False(t, unbanned.IsBanned)
}

func TestCreateAdjustment(t *testing.T) {
	admin := profile(models.RoleAdmin, 0)
	user := profile(models.RoleBasic, 1000)
	repo := newMemRepo(admin, user)
	f := newMemFixture(t, repo)
	f.allowEvents()
	ctx := context.Background()

	result, err := f.uc.CreateAdjustment(ctx, admin.ID, models.AdjustmentRequest{
		UserID: user.ID,
		Kind:   models.KindBonus,
		Amount: 500,
	})
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, int64(1500), result.Balance)
	assert.Equal(t, admin.ID.String(), result.Transaction.Metadata[models.MetaCreatedBy])
	assert.Equal(t, models.ProviderManual, result.Transaction.Provider)

	_, err = f.uc.CreateAdjustment(ctx, admin.ID, models.AdjustmentRequest{
		UserID: user.ID,
		Kind:   models.KindFee,
		Amount: 2000,
	})
	assert.ErrorIs(t, err, billing.ErrInsufficientFunds)
	assert.Equal(t, int64(1500), repo.balance(user.ID))

	_, err = f.uc.CreateAdjustment(ctx, admin.ID, models.AdjustmentRequest{UserID: user.ID, Kind: models.KindDeposit, Amount: 1})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.uc.CreateAdjustment(ctx, user.ID, models.AdjustmentRequest{UserID: user.ID, Kind: models.KindBonus, Amount: 1})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestBroadcast(t *testing.T) {
	f := newFixture(t)
	owner := profile(models.RoleOwner, 0)
	f.repo.EXPECT().GetProfile(gomock.Any(), owner.ID).Return(owner, nil).Times(3)

	_, err := f.uc.Broadcast(context.Background(), owner.ID, models.BroadcastRequest{Title: " ", Message: "hello"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	f.gw.EXPECT().PublishBroadcast(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b models.Broadcast) error {
			assert.Equal(t, "Release day", b.Title)
			assert.Equal(t, owner.ID, b.SentBy)
			assert.Equal(t, fixedNow, b.SentAt)
			return nil
		})
	sent, err := f.uc.Broadcast(context.Background(), owner.ID, models.BroadcastRequest{Title: "Release day", Message: "New releases are live"})
	require.NoError(t, err)
	assert.Equal(t, "Release day", sent.Title)

	f.gw.EXPECT().PublishBroadcast(gomock.Any(), gomock.Any()).Return(errors.New("nsqd down"))
	_, err = f.uc.Broadcast(context.Background(), owner.ID, models.BroadcastRequest{Title: "t", Message: "m"})
	assert.Equal(t, apperror.KindUnavailable, apperror.KindOf(err))
}

func TestSetMaintenance(t *testing.T) {
	owner := profile(models.RoleOwner, 0)
	repo := newMemRepo(owner)
	f := newMemFixture(t, repo)

	state, err := f.uc.SetMaintenance(context.Background(), owner.ID, models.MaintenanceRequest{Enabled: true, Message: "Back at 18:00"})
	require.NoError(t, err)
	assert.True(t, state.Enabled)

	current, err := f.uc.MaintenanceState(context.Background())
	require.NoError(t, err)
	assert.True(t, current.Enabled)
	assert.Equal(t, "Back at 18:00", current.Message)
	assert.Equal(t, owner.ID, current.UpdatedBy)
}

func TestRunDiagnostics(t *testing.T) {
	owner := profile(models.RoleOwner, 900)
	repo := newMemRepo(owner)
	f := newMemFixture(t, repo)

	report, err := f.uc.RunDiagnostics(context.Background(), owner.ID)

	require.NoError(t, err)
	assert.True(t, report.OK)
	assert.Equal(t, 3, report.Inserted)
	assert.Equal(t, 3, report.Removed)
	assert.Empty(t, repo.all())
	assert.Equal(t, int64(900), repo.balance(owner.ID))
}

func TestRunDiagnostics_CleansUpAfterFailure(t *testing.T) {
	f := newFixture(t)
	owner := profile(models.RoleOwner, 0)
	f.repo.EXPECT().GetProfile(gomock.Any(), owner.ID).Return(owner, nil)
	gomock.InOrder(
		f.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil),
		f.repo.EXPECT().GetTransaction(gomock.Any(), gomock.Any()).Return(&models.Transaction{}, nil),
		f.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(errors.New("disk full")),
		f.repo.EXPECT().DeleteTestTransactions(gomock.Any(), gomock.Len(1)).Return(1, nil),
	)

	report, err := f.uc.RunDiagnostics(context.Background(), owner.ID)

	require.NoError(t, err)
	assert.False(t, report.OK)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Removed)
}

func TestRunDiagnostics_CleansUpAfterCancel(t *testing.T) {
	f := newFixture(t)
	owner := profile(models.RoleOwner, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.repo.EXPECT().GetProfile(gomock.Any(), owner.ID).Return(owner, nil)
	gomock.InOrder(
		f.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil),
		f.repo.EXPECT().GetTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, uuid.UUID) (*models.Transaction, error) {
				cancel()
				return nil, context.Canceled
			}),
		f.repo.EXPECT().DeleteTestTransactions(gomock.Any(), gomock.Len(1)).
			DoAndReturn(func(ctx context.Context, ids []uuid.UUID) (int, error) {
				assert.NoError(t, ctx.Err())
				return len(ids), nil
			}),
	)

	report, err := f.uc.RunDiagnostics(ctx, owner.ID)

	require.NoError(t, err)
	assert.False(t, report.OK)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Removed)
}

package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing/mocks"
)

func TestSweeper_RunsUntilCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockBillingUC(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan struct{}, 10)

	first := uc.EXPECT().Sweep(gomock.Any()).Return(nil, errors.New("redis down"))
	uc.EXPECT().Sweep(gomock.Any()).After(first).
		DoAndReturn(func(ctx context.Context) (*models.SweepReport, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			select {
			case calls <- struct{}{}:
			default:
			}
			return &models.SweepReport{Leader: false}, nil
		}).MinTimes(2)

	done := make(chan struct{})
	go func() {
		NewSweeper(uc, 5*time.Millisecond).Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not run")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

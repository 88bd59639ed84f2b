package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/thqlabel/thqlabel/internal/pkg/constants"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

// releaseIfOwner deletes KEYS[1] only while it still holds ARGV[1]
var releaseIfOwner = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireWebhookLock takes the in-flight lock of one provider event
func (r *BillingRepo) AcquireWebhookLock(ctx context.Context, provider, ref string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf(constants.KeyWebhookLock, provider, ref)
	ok, err := r.redisClient.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339Nano), ttl)
	if err != nil {
		return false, fmt.Errorf("failed to acquire webhook lock: %w", err)
	}
	return ok, nil
}

// ReleaseWebhookLock drops the in-flight lock of one provider event
func (r *BillingRepo) ReleaseWebhookLock(ctx context.Context, provider, ref string) error {
	key := fmt.Sprintf(constants.KeyWebhookLock, provider, ref)
	if err := r.redisClient.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to release webhook lock: %w", err)
	}
	return nil
}

// AcquireSweepLock elects owner as the only sweeper for ttl
func (r *BillingRepo) AcquireSweepLock(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	ok, err := r.redisClient.SetNX(ctx, constants.KeySweepLeader, owner, ttl)
	if err != nil {
		return false, fmt.Errorf("failed to acquire sweep lock: %w", err)
	}
	return ok, nil
}

// ReleaseSweepLock gives up the sweep lock if owner still holds it
func (r *BillingRepo) ReleaseSweepLock(ctx context.Context, owner string) error {
	if err := releaseIfOwner.Run(ctx, r.redisClient.Client, []string{constants.KeySweepLeader}, owner).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to release sweep lock: %w", err)
	}
	return nil
}

// GetMaintenance returns the maintenance flag, disabled when unset
func (r *BillingRepo) GetMaintenance(ctx context.Context) (*models.MaintenanceState, error) {
	raw, err := r.redisClient.Get(ctx, constants.KeyMaintenance)
	if errors.Is(err, redis.Nil) {
		return &models.MaintenanceState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance state: %w", err)
	}

	var state models.MaintenanceState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to decode maintenance state: %w", err)
	}
	return &state, nil
}

// SetMaintenance stores the maintenance flag without expiry
func (r *BillingRepo) SetMaintenance(ctx context.Context, state *models.MaintenanceState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode maintenance state: %w", err)
	}
	if err := r.redisClient.Set(ctx, constants.KeyMaintenance, data, 0); err != nil {
		return fmt.Errorf("failed to set maintenance state: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
)

const profileColumns = `id, email, display_name, role, balance, is_banned, banned_at, banned_by, ban_reason, created_at, updated_at`

// GetProfile retrieves a profile by id
func (r *BillingRepo) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// SetBanned bans or unbans a profile
func (r *BillingRepo) SetBanned(ctx context.Context, id uuid.UUID, banned bool, by uuid.UUID, reason string) (*models.Profile, error) {
	now := time.Now().UTC()

	var (
		query string
		args  []interface{}
	)
	if banned {
		query = `
			UPDATE profiles
			SET is_banned = TRUE, banned_at = $2, banned_by = $3, ban_reason = $4, updated_at = $2
			WHERE id = $1
			RETURNING ` + profileColumns
		args = []interface{}{id, now, by, reason}
	} else {
		query = `
			UPDATE profiles
			SET is_banned = FALSE, banned_at = NULL, banned_by = NULL, ban_reason = '', updated_at = $2
			WHERE id = $1
			RETURNING ` + profileColumns
		args = []interface{}{id, now}
	}

	var profile models.Profile
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&profile); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update ban state: %w", err)
	}
	return &profile, nil
}

package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
)

// activeProfile loads the caller's profile and rejects banned accounts
func (uc *BillingUC) activeProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := uc.billingRepo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, billing.ErrProfileNotFound) {
			return nil, apperror.Auth("unknown user")
		}
		return nil, err
	}
	if profile.IsBanned {
		return nil, apperror.Forbidden("account is banned")
	}
	return profile, nil
}

// requireRole loads the caller's profile and checks it holds one of roles.
// Roles always come from storage, never from the token.
func (uc *BillingUC) requireRole(ctx context.Context, actorID uuid.UUID, roles ...models.Role) (*models.Profile, error) {
	profile, err := uc.activeProfile(ctx, actorID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if profile.Role == role {
			return profile, nil
		}
	}
	return nil, apperror.Forbidden("insufficient role")
}

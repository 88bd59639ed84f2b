package models

import (
	"time"

	"github.com/google/uuid"
)

// Role gates access to moderation and owner-only endpoints
type Role string

const (
	RoleBasic     Role = "basic"
	RoleExclusive Role = "exclusive"
	RoleAdmin     Role = "admin"
	RoleOwner     Role = "owner"
)

// IsStaff reports whether the role may use admin tooling
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleOwner
}

// Profile is the part of a user record the billing service reads
type Profile struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Email       string     `json:"email" db:"email"`
	DisplayName string     `json:"display_name" db:"display_name"`
	Role        Role       `json:"role" db:"role"`
	Balance     int64      `json:"balance" db:"balance"`
	IsBanned    bool       `json:"is_banned" db:"is_banned"`
	BannedAt    *time.Time `json:"banned_at,omitempty" db:"banned_at"`
	BannedBy    *uuid.UUID `json:"banned_by,omitempty" db:"banned_by"`
	BanReason   string     `json:"ban_reason,omitempty" db:"ban_reason"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// BalanceResponse is returned by the balance endpoint
type BalanceResponse struct {
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
}

// BanRequest is the body of a ban request
type BanRequest struct {
	Reason string `json:"reason"`
}

// AdjustmentRequest is a manual ledger entry created by staff
type AdjustmentRequest struct {
	UserID      uuid.UUID       `json:"user_id"`
	Kind        TransactionKind `json:"kind"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
}

// MaintenanceRequest toggles maintenance mode
type MaintenanceRequest struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message,omitempty"`
}

// MaintenanceState is the stored maintenance flag
type MaintenanceState struct {
	Enabled   bool      `json:"enabled"`
	Message   string    `json:"message,omitempty"`
	UpdatedBy uuid.UUID `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiagnosticsReport is the outcome of the ledger self-check
type DiagnosticsReport struct {
	Inserted int           `json:"inserted"`
	Removed  int           `json:"removed"`
	Duration time.Duration `json:"duration_ns"`
	OK       bool          `json:"ok"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction change event types
const (
	EventTransactionCreated   = "transaction.created"
	EventTransactionCompleted = "transaction.completed"
	EventTransactionFailed    = "transaction.failed"
	EventTransactionUpdated   = "transaction.updated"
)

// TransactionEvent is published on every transaction state change
type TransactionEvent struct {
	Type          string            `json:"type"`
	TransactionID uuid.UUID         `json:"transaction_id"`
	UserID        uuid.UUID         `json:"user_id"`
	Kind          TransactionKind   `json:"kind"`
	Status        TransactionStatus `json:"status"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	BalanceAfter  *int64            `json:"balance_after,omitempty"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// NewTransactionEvent builds a change event from a transaction
func NewTransactionEvent(eventType string, tx *Transaction) TransactionEvent {
	return TransactionEvent{
		Type:          eventType,
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		Kind:          tx.Kind,
		Status:        tx.Status,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		BalanceAfter:  tx.BalanceAfter,
		OccurredAt:    time.Now().UTC(),
	}
}

// FinanceNotification is queued for the notification workers
type FinanceNotification struct {
	UserID        uuid.UUID         `json:"user_id"`
	TransactionID uuid.UUID         `json:"transaction_id"`
	Kind          TransactionKind   `json:"kind"`
	Status        TransactionStatus `json:"status"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	Title         string            `json:"title"`
	Message       string            `json:"message"`
	CreatedAt     time.Time         `json:"created_at"`
}

// BroadcastRequest is an owner announcement to every user
type BroadcastRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Broadcast is the queued form of a BroadcastRequest
type Broadcast struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	SentBy  uuid.UUID `json:"sent_by"`
	SentAt  time.Time `json:"sent_at"`
}

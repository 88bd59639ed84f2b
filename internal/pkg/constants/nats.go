package constants

import "fmt"

// NATS subjects
const (
	// SubjectTransactionFeed carries change events for one user: billing.transactions.{user_id}
	SubjectTransactionFeed = "billing.transactions.%s"
)

// TransactionFeedSubject returns the feed subject of userID
func TransactionFeedSubject(userID fmt.Stringer) string {
	return fmt.Sprintf(SubjectTransactionFeed, userID.String())
}

package models

// Settlement represents a payment between participants to clear debts.
// The netting engine's Balance output is advisory only; a Settlement is the
// record a user actually confirms.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// EventID is the event this settlement belongs to.
	EventID string `json:"event_id"`

	// FromUserID is the participant who paid (debtor settling up).
	FromUserID string `json:"from_user_id"`

	// ToUserID is the participant who received payment (creditor being paid).
	ToUserID string `json:"to_user_id"`

	// Amount is the payment amount.
	Amount float64 `json:"amount"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"created_at"`

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string `json:"created_by"`

	// Note is an optional description for the settlement.
	Note string `json:"note,omitempty"`
}

package models

// Expense represents a shared expense paid by one participant on behalf of several.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// EventID is the event this expense belongs to.
	EventID string `json:"event_id"`

	// Description is a human-readable label (e.g., "Dinner", "Taxi").
	Description string `json:"description"`

	// Amount is the full expense amount paid by the payer.
	Amount float64 `json:"amount"`

	// Currency is the ISO currency code (e.g., "USD").
	Currency string `json:"currency"`

	// Date is the ISO-8601 timestamp of when the expense occurred.
	// The timeline engine maps this onto the event's date axis.
	Date string `json:"date"`

	// PaidBy is the participant ID of whoever paid.
	PaidBy string `json:"paid_by"`

	// Participants is the ordered list of participant IDs splitting the expense.
	// Must be non-empty before the split calculators are called; the calculators
	// themselves do not guard against an empty list.
	Participants []string `json:"participants"`

	// Settled reports whether this expense has been settled up.
	Settled bool `json:"settled"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// Participant is a person splitting expenses. The calculators use the ID as an
// opaque key and the name only as a display label.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Balance is a suggested transfer from a debtor to a creditor, produced by the
// netting engine. Amount is always positive and From never equals To.
type Balance struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

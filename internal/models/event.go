package models

// Event represents a trip or occasion that expenses are recorded against.
// Its start/end dates define the axis the timeline engine maps expenses onto.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string `json:"id"`

	// Name is the display name of the event (e.g., "Lisbon Trip").
	Name string `json:"name"`

	// Date is the event's single date for events created before start/end
	// dates existed. The timeline engine falls back to it when StartDate is
	// empty.
	Date string `json:"date,omitempty"`

	// StartDate is the ISO-8601 timestamp the event begins.
	StartDate string `json:"start_date"`

	// EndDate is the ISO-8601 timestamp the event ends. Empty means the event
	// is open-ended: "now" substitutes for it in duration math, and the
	// post-event timeline band never applies.
	EndDate string `json:"end_date,omitempty"`

	// Members is the list of participant IDs in this event. This is the master
	// participant list handed to the netting engine.
	Members []string `json:"members"`

	// CreatedAt is the Unix timestamp when the event was created.
	CreatedAt int64 `json:"created_at"`
}

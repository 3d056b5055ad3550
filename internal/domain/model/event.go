package model

// EventStatus tracks where an event is in its planning lifecycle.
type EventStatus string

// Event lifecycle states.
const (
	EventPlanning  EventStatus = "Planning"
	EventConfirmed EventStatus = "Confirmed"
	EventCompleted EventStatus = "Completed"
)

// Event is the query side of a recommendation request: a planned
// happening with a free-text budget and location. Description and Type
// are optional; an empty value only weakens the keyword signal.
type Event struct {
	ID          string
	Name        string
	Date        string
	Time        string
	Location    string
	Budget      string // free-text currency string, e.g. "$15,000"
	Attendees   int
	Status      EventStatus
	Description string
	Type        string
	Progress    int      // planning progress, 0-100
	SupplierIDs []string // suppliers attached to the event
}

// RefreshJob asks the worker pool to recompute cached recommendations
// for one event. JobID exists for queue-level deduplication.
type RefreshJob struct {
	JobID   string
	EventID string
}

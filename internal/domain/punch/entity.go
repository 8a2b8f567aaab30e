package punch

import "time"

// Event is a single normalized punch: one user, one point in time. The user
// id stays a string at this stage; numeric coercion happens at the directory
// join so non-numeric ids survive normalization.
type Event struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Date returns the event's calendar date with the time component zeroed.
func (e Event) Date() time.Time {
	y, m, d := e.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.Timestamp.Location())
}

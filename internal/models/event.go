package models

// Event is a scheduled event visitors can reserve a seat at.
// Date is stored as YYYY-MM-DD.
type Event struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Capacity int    `json:"capacity"`
	Reserved int    `json:"reserved"`
}

// Remaining returns the number of available seats.
func (e *Event) Remaining() int {
	return e.Capacity - e.Reserved
}

// IsFull returns true when no seats remain.
func (e *Event) IsFull() bool {
	return e.Reserved >= e.Capacity
}

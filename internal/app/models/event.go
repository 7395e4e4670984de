package models

import "time"

// Event defines the event model based on the 'events' table
type Event struct {
	ID          int64         `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description" db:"description"`
	Location    string        `json:"location" db:"location"`
	StartDate   time.Time     `json:"start_date" db:"start_date"`
	EndDate     time.Time     `json:"end_date" db:"end_date"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	Images      []*EventImage `json:"images,omitempty"` // Relation, no db tag
}

// EventImage is an image attached to an Event; deleted with its event
type EventImage struct {
	ID      int64   `json:"id" db:"id"`
	EventID int64   `json:"event_id" db:"event_id"`
	Image   string  `json:"image" db:"image"`
	Caption *string `json:"caption,omitempty" db:"caption"`
}

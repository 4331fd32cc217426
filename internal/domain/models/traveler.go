package models

import "time"

// TravelerStatus represents where a traveler is in their trip lifecycle.
type TravelerStatus string

const (
	// TravelerPreDeparture means the trip has not started yet.
	TravelerPreDeparture TravelerStatus = "pre_departure"
	// TravelerTraveling means the traveler is currently on their trip.
	TravelerTraveling TravelerStatus = "traveling"
	// TravelerCompleted means the trip has finished.
	TravelerCompleted TravelerStatus = "completed"
)

// TravelDates holds the departure and return dates of a booking.
type TravelDates struct {
	Departure string `json:"departure"`
	Return    string `json:"return"`
}

// Traveler represents a customer with an active or past booking.
type Traveler struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	BookingID   string         `json:"booking_id"`
	Destination string         `json:"destination"`
	TravelDates TravelDates    `json:"travel_dates"`
	Status      TravelerStatus `json:"status"`
	// Preferences is a closed mapping of preference key to scalar value,
	// stored as-is and never interpreted by this service.
	Preferences map[string]string `json:"preferences,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TravelerSummary is the subset of traveler fields joined into conversation
// and feedback rows.
type TravelerSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Destination string `json:"destination"`
}

package model

// Person представляет участника поездки.
type Person struct {
	ID     string `db:"id" json:"id"`
	TripID string `db:"trip_id" json:"tripId"`
	Name   string `db:"name" json:"name"`
}

package model

// Transport представляет перемещение в рамках поездки (перелет, поезд, автомобиль).
type Transport struct {
	ID          string `db:"id" json:"id"`
	TripID      string `db:"trip_id" json:"tripId"`
	Kind        string `db:"kind" json:"kind"` // вид транспорта: "flight", "train", "car" и т.п.
	Origin      string `db:"origin" json:"origin"`
	Destination string `db:"destination" json:"destination"`
	Departure   string `db:"departure" json:"departure"` // дата/время отправления (ISO 8601)
	Note        string `db:"note" json:"note"`
}

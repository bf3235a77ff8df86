package model

// Room представляет комнату (номер, апартаменты) в рамках поездки.
type Room struct {
	ID       string `db:"id" json:"id"`
	TripID   string `db:"trip_id" json:"tripId"`
	Name     string `db:"name" json:"name"`
	Capacity int    `db:"capacity" json:"capacity"` // вместимость в спальных местах
}

package model

// RoomAssignment представляет размещение участника в комнате на интервал дат.
// Интервал полуоткрытый [StartDate, EndDate): ночь заезда включается, утро выезда
// уже свободно — выезд и заезд разных размещений в один день не пересекаются.
type RoomAssignment struct {
	ID        string `db:"id" json:"id"`
	TripID    string `db:"trip_id" json:"tripId"`
	RoomID    string `db:"room_id" json:"roomId"`
	PersonID  string `db:"person_id" json:"personId"`
	StartDate string `db:"start_date" json:"startDate"`
	EndDate   string `db:"end_date" json:"endDate"`
}

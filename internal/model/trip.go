package model

// Trip представляет поездку (отпуск), которой принадлежат комнаты, участники,
// размещения и транспорт. Даты хранятся строками в формате YYYY-MM-DD.
type Trip struct {
	ID        string  `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	StartDate string  `db:"start_date" json:"startDate"`
	EndDate   string  `db:"end_date" json:"endDate"`
	ShareID   *string `db:"share_id" json:"shareId,omitempty"` // токен публичной ссылки (если создана)
}

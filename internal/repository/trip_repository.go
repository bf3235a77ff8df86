package repository

import (
	"database/sql"
	"fmt"

	"tripplanner/internal/model"

	"github.com/jmoiron/sqlx"
)

// TripRepository обеспечивает доступ к данным поездок в базе данных.
type TripRepository struct {
	db *sqlx.DB
}

// NewTripRepository создает новый репозиторий поездок.
func NewTripRepository(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create сохраняет новую поездку.
func (r *TripRepository) Create(trip *model.Trip) error {
	query := `INSERT INTO trips (id, name, start_date, end_date) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(query, trip.ID, trip.Name, trip.StartDate, trip.EndDate)
	if isUniqueViolation(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("не удалось создать поездку: %w", err)
	}
	return nil
}

// GetByID возвращает поездку по идентификатору.
func (r *TripRepository) GetByID(id string) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.Get(&trip, "SELECT * FROM trips WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// GetByShareID возвращает поездку по токену публичной ссылки.
func (r *TripRepository) GetByShareID(shareID string) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.Get(&trip, "SELECT * FROM trips WHERE share_id=$1", shareID)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// List возвращает все поездки, отсортированные по дате начала.
func (r *TripRepository) List() ([]model.Trip, error) {
	trips := []model.Trip{}
	err := r.db.Select(&trips, "SELECT * FROM trips ORDER BY start_date, name")
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка поездок: %w", err)
	}
	return trips, nil
}

// Update обновляет название и даты поездки.
func (r *TripRepository) Update(trip *model.Trip) error {
	res, err := r.db.Exec("UPDATE trips SET name=$1, start_date=$2, end_date=$3 WHERE id=$4",
		trip.Name, trip.StartDate, trip.EndDate, trip.ID)
	if err != nil {
		return fmt.Errorf("не удалось обновить поездку: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetShareID записывает токен публичной ссылки поездки.
func (r *TripRepository) SetShareID(tripID, shareID string) error {
	res, err := r.db.Exec("UPDATE trips SET share_id=$1 WHERE id=$2", shareID, tripID)
	if isUniqueViolation(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("не удалось сохранить токен ссылки: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete удаляет поездку вместе со всем содержимым (размещения, транспорт,
// участники, комнаты) в одной транзакции.
func (r *TripRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	cascade := []string{
		"DELETE FROM room_assignments WHERE trip_id=$1",
		"DELETE FROM transports WHERE trip_id=$1",
		"DELETE FROM persons WHERE trip_id=$1",
		"DELETE FROM rooms WHERE trip_id=$1",
	}
	for _, q := range cascade {
		if _, err := tx.Exec(q, id); err != nil {
			tx.Rollback()
			return fmt.Errorf("не удалось удалить содержимое поездки: %w", err)
		}
	}
	res, err := tx.Exec("DELETE FROM trips WHERE id=$1", id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("не удалось удалить поездку: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return sql.ErrNoRows
	}
	return tx.Commit()
}

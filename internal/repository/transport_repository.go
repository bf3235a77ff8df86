package repository

import (
	"database/sql"
	"fmt"

	"tripplanner/internal/model"

	"github.com/jmoiron/sqlx"
)

// TransportRepository обеспечивает доступ к данным транспорта в базе данных.
type TransportRepository struct {
	db *sqlx.DB
}

// NewTransportRepository создает новый репозиторий транспорта.
func NewTransportRepository(db *sqlx.DB) *TransportRepository {
	return &TransportRepository{db: db}
}

// Create сохраняет новое перемещение.
func (r *TransportRepository) Create(t *model.Transport) error {
	query := `INSERT INTO transports (id, trip_id, kind, origin, destination, departure, note)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(query, t.ID, t.TripID, t.Kind, t.Origin, t.Destination, t.Departure, t.Note)
	if isUniqueViolation(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("не удалось создать перемещение: %w", err)
	}
	return nil
}

// GetByID возвращает перемещение по идентификатору.
func (r *TransportRepository) GetByID(id string) (*model.Transport, error) {
	var t model.Transport
	err := r.db.Get(&t, "SELECT * FROM transports WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByTrip возвращает перемещения поездки в порядке отправления.
func (r *TransportRepository) ListByTrip(tripID string) ([]model.Transport, error) {
	transports := []model.Transport{}
	err := r.db.Select(&transports,
		"SELECT * FROM transports WHERE trip_id=$1 ORDER BY departure", tripID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка транспорта: %w", err)
	}
	return transports, nil
}

// Update обновляет данные перемещения.
func (r *TransportRepository) Update(t *model.Transport) error {
	res, err := r.db.Exec(
		"UPDATE transports SET kind=$1, origin=$2, destination=$3, departure=$4, note=$5 WHERE id=$6",
		t.Kind, t.Origin, t.Destination, t.Departure, t.Note, t.ID)
	if err != nil {
		return fmt.Errorf("не удалось обновить перемещение: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete удаляет перемещение.
func (r *TransportRepository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM transports WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("не удалось удалить перемещение: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

package repository

import (
	"database/sql"
	"fmt"

	"tripplanner/internal/model"

	"github.com/jmoiron/sqlx"
)

// AssignmentRepository обеспечивает доступ к данным размещений в базе данных.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository создает новый репозиторий размещений.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create сохраняет новое размещение.
func (r *AssignmentRepository) Create(a *model.RoomAssignment) error {
	query := `INSERT INTO room_assignments (id, trip_id, room_id, person_id, start_date, end_date)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(query, a.ID, a.TripID, a.RoomID, a.PersonID, a.StartDate, a.EndDate)
	if isUniqueViolation(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("не удалось создать размещение: %w", err)
	}
	return nil
}

// GetByID возвращает размещение по идентификатору.
func (r *AssignmentRepository) GetByID(id string) (*model.RoomAssignment, error) {
	var a model.RoomAssignment
	err := r.db.Get(&a, "SELECT * FROM room_assignments WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Update обновляет комнату, участника и даты размещения.
func (r *AssignmentRepository) Update(a *model.RoomAssignment) error {
	res, err := r.db.Exec(
		"UPDATE room_assignments SET room_id=$1, person_id=$2, start_date=$3, end_date=$4 WHERE id=$5",
		a.RoomID, a.PersonID, a.StartDate, a.EndDate, a.ID)
	if err != nil {
		return fmt.Errorf("не удалось обновить размещение: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete удаляет размещение.
func (r *AssignmentRepository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM room_assignments WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("не удалось удалить размещение: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByTrip возвращает все размещения поездки.
func (r *AssignmentRepository) ListByTrip(tripID string) ([]model.RoomAssignment, error) {
	assignments := []model.RoomAssignment{}
	err := r.db.Select(&assignments,
		"SELECT * FROM room_assignments WHERE trip_id=$1 ORDER BY start_date", tripID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении размещений поездки: %w", err)
	}
	return assignments, nil
}

// ListByPerson возвращает размещения участника в рамках поездки.
// Движок проверки пересечений читает этот список заново при каждой проверке.
func (r *AssignmentRepository) ListByPerson(tripID, personID string) ([]model.RoomAssignment, error) {
	assignments := []model.RoomAssignment{}
	err := r.db.Select(&assignments,
		"SELECT * FROM room_assignments WHERE trip_id=$1 AND person_id=$2 ORDER BY start_date",
		tripID, personID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении размещений участника: %w", err)
	}
	return assignments, nil
}

// ListByRoom возвращает размещения в указанной комнате.
func (r *AssignmentRepository) ListByRoom(roomID string) ([]model.RoomAssignment, error) {
	assignments := []model.RoomAssignment{}
	err := r.db.Select(&assignments,
		"SELECT * FROM room_assignments WHERE room_id=$1 ORDER BY start_date", roomID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении размещений комнаты: %w", err)
	}
	return assignments, nil
}

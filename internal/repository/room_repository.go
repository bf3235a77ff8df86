package repository

import (
	"database/sql"
	"fmt"

	"tripplanner/internal/model"

	"github.com/jmoiron/sqlx"
)

// RoomRepository обеспечивает доступ к данным комнат в базе данных.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository создает новый репозиторий комнат.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create сохраняет новую комнату.
func (r *RoomRepository) Create(room *model.Room) error {
	query := `INSERT INTO rooms (id, trip_id, name, capacity) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(query, room.ID, room.TripID, room.Name, room.Capacity)
	if isUniqueViolation(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("не удалось создать комнату: %w", err)
	}
	return nil
}

// GetByID возвращает комнату по идентификатору.
func (r *RoomRepository) GetByID(id string) (*model.Room, error) {
	var room model.Room
	err := r.db.Get(&room, "SELECT * FROM rooms WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListByTrip возвращает комнаты поездки.
func (r *RoomRepository) ListByTrip(tripID string) ([]model.Room, error) {
	rooms := []model.Room{}
	err := r.db.Select(&rooms, "SELECT * FROM rooms WHERE trip_id=$1 ORDER BY name", tripID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка комнат: %w", err)
	}
	return rooms, nil
}

// Update обновляет название и вместимость комнаты.
func (r *RoomRepository) Update(room *model.Room) error {
	res, err := r.db.Exec("UPDATE rooms SET name=$1, capacity=$2 WHERE id=$3",
		room.Name, room.Capacity, room.ID)
	if err != nil {
		return fmt.Errorf("не удалось обновить комнату: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete удаляет комнату вместе с ее размещениями.
func (r *RoomRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM room_assignments WHERE room_id=$1", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("не удалось удалить размещения комнаты: %w", err)
	}
	res, err := tx.Exec("DELETE FROM rooms WHERE id=$1", id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("не удалось удалить комнату: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return sql.ErrNoRows
	}
	return tx.Commit()
}

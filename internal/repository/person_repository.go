package repository

import (
	"database/sql"
	"fmt"

	"tripplanner/internal/model"

	"github.com/jmoiron/sqlx"
)

// PersonRepository обеспечивает доступ к данным участников поездки в базе данных.
type PersonRepository struct {
	db *sqlx.DB
}

// NewPersonRepository создает новый репозиторий участников.
func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Create сохраняет нового участника.
func (r *PersonRepository) Create(person *model.Person) error {
	query := `INSERT INTO persons (id, trip_id, name) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(query, person.ID, person.TripID, person.Name)
	if isUniqueViolation(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("не удалось создать участника: %w", err)
	}
	return nil
}

// GetByID возвращает участника по идентификатору.
func (r *PersonRepository) GetByID(id string) (*model.Person, error) {
	var person model.Person
	err := r.db.Get(&person, "SELECT * FROM persons WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// ListByTrip возвращает участников поездки.
func (r *PersonRepository) ListByTrip(tripID string) ([]model.Person, error) {
	persons := []model.Person{}
	err := r.db.Select(&persons, "SELECT * FROM persons WHERE trip_id=$1 ORDER BY name", tripID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка участников: %w", err)
	}
	return persons, nil
}

// Update обновляет имя участника.
func (r *PersonRepository) Update(person *model.Person) error {
	res, err := r.db.Exec("UPDATE persons SET name=$1 WHERE id=$2", person.Name, person.ID)
	if err != nil {
		return fmt.Errorf("не удалось обновить участника: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete удаляет участника вместе с его размещениями.
func (r *PersonRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM room_assignments WHERE person_id=$1", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("не удалось удалить размещения участника: %w", err)
	}
	res, err := tx.Exec("DELETE FROM persons WHERE id=$1", id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("не удалось удалить участника: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return sql.ErrNoRows
	}
	return tx.Commit()
}

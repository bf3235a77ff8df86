package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicateID возвращается при нарушении уникальности идентификатора.
// Сервисный слой повторяет вставку с новым идентификатором.
var ErrDuplicateID = errors.New("идентификатор уже занят")

// isUniqueViolation определяет, является ли ошибка нарушением уникальности в Postgres.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

package service

import (
	"errors"

	"tripplanner/internal/repository"
)

// Базовые ошибки бизнес-логики. Обработчики сопоставляют их с HTTP-статусами
// через errors.Is; сообщения для пользователя формирует интерфейс.
var (
	// ErrValidation — некорректные входные данные (пустой или отрицательный
	// интервал дат, незаполненное обязательное поле). Операция не начинается.
	ErrValidation = errors.New("некорректные входные данные")

	// ErrConflict — размещение пересекается с существующим размещением того же
	// участника. Никакое частичное состояние не записывается.
	ErrConflict = errors.New("участник уже размещен на эти даты")

	// ErrNotFound — упомянутая запись (поездка, комната, участник, размещение)
	// отсутствует.
	ErrNotFound = errors.New("запись не найдена")

	// ErrConstraint — коллизия сгенерированного идентификатора. Повторяемая:
	// вставка выполняется заново со свежим идентификатором.
	ErrConstraint = repository.ErrDuplicateID

	// ErrCreationFailed — исчерпаны попытки подобрать уникальный идентификатор.
	ErrCreationFailed = errors.New("не удалось создать запись: исчерпаны попытки генерации идентификатора")

	// ErrCapacityExceeded — превышена вместимость комнаты (только при политике
	// CapacityBlock).
	ErrCapacityExceeded = errors.New("превышена вместимость комнаты")
)

package service

import (
	"fmt"

	"tripplanner/internal/model"
)

// CapacityPolicy определяет реакцию на превышение вместимости комнаты.
type CapacityPolicy string

const (
	// CapacityWarn — создание разрешено; предупреждение о переполнении
	// показывает интерфейс по данным RoomOccupancy. Политика по умолчанию.
	CapacityWarn CapacityPolicy = "warn"
	// CapacityBlock — создание размещения сверх вместимости блокируется
	// с ошибкой ErrCapacityExceeded.
	CapacityBlock CapacityPolicy = "block"
)

// AssignmentStore — операции хранения размещений, необходимые движку.
type AssignmentStore interface {
	Create(a *model.RoomAssignment) error
	GetByID(id string) (*model.RoomAssignment, error)
	Update(a *model.RoomAssignment) error
	Delete(id string) error
	ListByTrip(tripID string) ([]model.RoomAssignment, error)
	ListByPerson(tripID, personID string) ([]model.RoomAssignment, error)
	ListByRoom(roomID string) ([]model.RoomAssignment, error)
}

// RoomStore — чтение комнат для валидации размещений.
type RoomStore interface {
	GetByID(id string) (*model.Room, error)
}

// PersonStore — чтение участников для валидации размещений.
type PersonStore interface {
	GetByID(id string) (*model.Person, error)
}

// AssignmentService — движок размещений: следит, чтобы один участник не был
// размещен в двух местах на одну и ту же ночь.
type AssignmentService struct {
	assignments    AssignmentStore
	rooms          RoomStore
	persons        PersonStore
	capacityPolicy CapacityPolicy
}

// NewAssignmentService создает движок размещений с заданной политикой
// вместимости. Пустая политика означает CapacityWarn.
func NewAssignmentService(assignments AssignmentStore, rooms RoomStore, persons PersonStore, policy CapacityPolicy) *AssignmentService {
	if policy == "" {
		policy = CapacityWarn
	}
	return &AssignmentService{
		assignments:    assignments,
		rooms:          rooms,
		persons:        persons,
		capacityPolicy: policy,
	}
}

// AssignmentInput — данные создаваемого или изменяемого размещения.
type AssignmentInput struct {
	RoomID    string `json:"roomId"`
	PersonID  string `json:"personId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// HasConflict сообщает, пересекается ли кандидат [start, end) с одним из
// существующих размещений. Пересечение полуоткрытых интервалов: S < e && s < E,
// то есть выезд и заезд в один день не конфликтуют. Пустой кандидат (start >= end)
// не бронирует ни одной ночи и не конфликтует ни с чем. Размещение с
// идентификатором excludeID пропускается — так редактирование не конфликтует
// само с собой.
func HasConflict(existing []model.RoomAssignment, start, end, excludeID string) bool {
	if start >= end {
		return false
	}
	for _, a := range existing {
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if start < a.EndDate && a.StartDate < end {
			return true
		}
	}
	return false
}

// CheckConflict проверяет кандидата против актуального списка размещений
// участника. Чтение без побочных эффектов; некорректный интервал дат
// отклоняется с ErrValidation до обращения к хранилищу.
func (s *AssignmentService) CheckConflict(tripID, personID, start, end, excludeID string) (bool, error) {
	if err := validateDateRange(start, end); err != nil {
		return false, err
	}
	existing, err := s.assignments.ListByPerson(tripID, personID)
	if err != nil {
		return false, err
	}
	return HasConflict(existing, start, end, excludeID), nil
}

// CreateAssignment создает размещение после полной валидации: формат и порядок
// дат, принадлежность комнаты и участника поездке, отсутствие пересечений у
// участника, вместимость комнаты по настроенной политике.
func (s *AssignmentService) CreateAssignment(tripID string, in AssignmentInput) (*model.RoomAssignment, error) {
	if err := s.validate(tripID, in, ""); err != nil {
		return nil, err
	}
	a := &model.RoomAssignment{
		TripID:    tripID,
		RoomID:    in.RoomID,
		PersonID:  in.PersonID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	id, err := createWithUniqueID(idExists(s.assignments.GetByID), func(id string) error {
		a.ID = id
		return s.assignments.Create(a)
	})
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

// UpdateAssignment изменяет существующее размещение. Проверка пересечений
// исключает само редактируемое размещение.
func (s *AssignmentService) UpdateAssignment(assignmentID string, in AssignmentInput) (*model.RoomAssignment, error) {
	current, err := s.assignments.GetByID(assignmentID)
	if err != nil {
		return nil, notFoundOr(err, "размещение")
	}
	if err := s.validate(current.TripID, in, assignmentID); err != nil {
		return nil, err
	}
	updated := &model.RoomAssignment{
		ID:        assignmentID,
		TripID:    current.TripID,
		RoomID:    in.RoomID,
		PersonID:  in.PersonID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	if err := s.assignments.Update(updated); err != nil {
		return nil, notFoundOr(err, "размещение")
	}
	return updated, nil
}

// DeleteAssignment удаляет размещение.
func (s *AssignmentService) DeleteAssignment(assignmentID string) error {
	if err := s.assignments.Delete(assignmentID); err != nil {
		return notFoundOr(err, "размещение")
	}
	return nil
}

// ListByTrip возвращает все размещения поездки.
func (s *AssignmentService) ListByTrip(tripID string) ([]model.RoomAssignment, error) {
	return s.assignments.ListByTrip(tripID)
}

// ListByPerson возвращает размещения участника в рамках поездки.
func (s *AssignmentService) ListByPerson(tripID, personID string) ([]model.RoomAssignment, error) {
	return s.assignments.ListByPerson(tripID, personID)
}

// RoomOccupancy возвращает пиковое число одновременно размещенных в комнате
// на интервале [start, end). Интерфейс сравнивает его с вместимостью и
// показывает предупреждение.
func (s *AssignmentService) RoomOccupancy(roomID, start, end string) (int, error) {
	if err := validateDateRange(start, end); err != nil {
		return 0, err
	}
	existing, err := s.assignments.ListByRoom(roomID)
	if err != nil {
		return 0, err
	}
	return peakOccupancy(existing, start, end, ""), nil
}

// validate выполняет все проверки перед записью размещения. При любой ошибке
// состояние хранилища не меняется.
func (s *AssignmentService) validate(tripID string, in AssignmentInput, excludeID string) error {
	if in.RoomID == "" || in.PersonID == "" {
		return fmt.Errorf("%w: комната и участник обязательны", ErrValidation)
	}
	if err := validateDateRange(in.StartDate, in.EndDate); err != nil {
		return err
	}
	room, err := s.rooms.GetByID(in.RoomID)
	if err != nil {
		return notFoundOr(err, "комната")
	}
	if room.TripID != tripID {
		return fmt.Errorf("%w: комната принадлежит другой поездке", ErrNotFound)
	}
	person, err := s.persons.GetByID(in.PersonID)
	if err != nil {
		return notFoundOr(err, "участник")
	}
	if person.TripID != tripID {
		return fmt.Errorf("%w: участник принадлежит другой поездке", ErrNotFound)
	}
	conflict, err := s.CheckConflict(tripID, in.PersonID, in.StartDate, in.EndDate, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrConflict
	}
	if s.capacityPolicy == CapacityBlock {
		existing, err := s.assignments.ListByRoom(in.RoomID)
		if err != nil {
			return err
		}
		if peakOccupancy(existing, in.StartDate, in.EndDate, excludeID)+1 > room.Capacity {
			return ErrCapacityExceeded
		}
	}
	return nil
}

// peakOccupancy считает пиковую занятость комнаты на интервале [start, end).
// Занятость меняется только в даты заездов, поэтому достаточно проверить
// начало интервала и даты заезда каждого пересекающегося размещения.
func peakOccupancy(existing []model.RoomAssignment, start, end, excludeID string) int {
	points := []string{start}
	for _, a := range existing {
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if a.StartDate > start && a.StartDate < end {
			points = append(points, a.StartDate)
		}
	}
	peak := 0
	for _, p := range points {
		count := 0
		for _, a := range existing {
			if excludeID != "" && a.ID == excludeID {
				continue
			}
			if a.StartDate <= p && p < a.EndDate {
				count++
			}
		}
		if count > peak {
			peak = count
		}
	}
	return peak
}

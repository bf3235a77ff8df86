package service

import (
	"fmt"

	"tripplanner/internal/model"
	"tripplanner/internal/repository"
)

// PersonService содержит бизнес-логику, связанную с участниками поездки.
type PersonService struct {
	personRepo *repository.PersonRepository
	tripRepo   *repository.TripRepository
}

// NewPersonService создает новый сервис участников.
func NewPersonService(personRepo *repository.PersonRepository, tripRepo *repository.TripRepository) *PersonService {
	return &PersonService{personRepo: personRepo, tripRepo: tripRepo}
}

// CreatePerson добавляет участника в поездку.
func (s *PersonService) CreatePerson(tripID, name string) (*model.Person, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: имя участника обязательно", ErrValidation)
	}
	if _, err := s.tripRepo.GetByID(tripID); err != nil {
		return nil, notFoundOr(err, "поездка")
	}
	person := &model.Person{TripID: tripID, Name: name}
	id, err := createWithUniqueID(idExists(s.personRepo.GetByID), func(id string) error {
		person.ID = id
		return s.personRepo.Create(person)
	})
	if err != nil {
		return nil, err
	}
	person.ID = id
	return person, nil
}

// GetPerson возвращает участника по идентификатору.
func (s *PersonService) GetPerson(id string) (*model.Person, error) {
	person, err := s.personRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "участник")
	}
	return person, nil
}

// ListPersons возвращает участников поездки.
func (s *PersonService) ListPersons(tripID string) ([]model.Person, error) {
	return s.personRepo.ListByTrip(tripID)
}

// UpdatePerson обновляет имя участника.
func (s *PersonService) UpdatePerson(id, name string) (*model.Person, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: имя участника обязательно", ErrValidation)
	}
	current, err := s.personRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "участник")
	}
	current.Name = name
	if err := s.personRepo.Update(current); err != nil {
		return nil, notFoundOr(err, "участник")
	}
	return current, nil
}

// DeletePerson удаляет участника вместе с его размещениями.
func (s *PersonService) DeletePerson(id string) error {
	if err := s.personRepo.Delete(id); err != nil {
		return notFoundOr(err, "участник")
	}
	return nil
}

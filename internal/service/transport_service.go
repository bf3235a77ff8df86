package service

import (
	"fmt"

	"tripplanner/internal/model"
	"tripplanner/internal/repository"
)

// TransportService содержит бизнес-логику, связанную с транспортом поездки.
type TransportService struct {
	transportRepo *repository.TransportRepository
	tripRepo      *repository.TripRepository
}

// NewTransportService создает новый сервис транспорта.
func NewTransportService(transportRepo *repository.TransportRepository, tripRepo *repository.TripRepository) *TransportService {
	return &TransportService{transportRepo: transportRepo, tripRepo: tripRepo}
}

// TransportInput — данные создаваемого или изменяемого перемещения.
type TransportInput struct {
	Kind        string `json:"kind"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Departure   string `json:"departure"`
	Note        string `json:"note"`
}

// CreateTransport добавляет перемещение в поездку.
func (s *TransportService) CreateTransport(tripID string, in TransportInput) (*model.Transport, error) {
	if in.Kind == "" || in.Origin == "" || in.Destination == "" {
		return nil, fmt.Errorf("%w: вид транспорта, пункты отправления и назначения обязательны", ErrValidation)
	}
	if _, err := s.tripRepo.GetByID(tripID); err != nil {
		return nil, notFoundOr(err, "поездка")
	}
	t := &model.Transport{
		TripID:      tripID,
		Kind:        in.Kind,
		Origin:      in.Origin,
		Destination: in.Destination,
		Departure:   in.Departure,
		Note:        in.Note,
	}
	id, err := createWithUniqueID(idExists(s.transportRepo.GetByID), func(id string) error {
		t.ID = id
		return s.transportRepo.Create(t)
	})
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

// ListTransports возвращает перемещения поездки.
func (s *TransportService) ListTransports(tripID string) ([]model.Transport, error) {
	return s.transportRepo.ListByTrip(tripID)
}

// UpdateTransport обновляет данные перемещения.
func (s *TransportService) UpdateTransport(id string, in TransportInput) (*model.Transport, error) {
	if in.Kind == "" || in.Origin == "" || in.Destination == "" {
		return nil, fmt.Errorf("%w: вид транспорта, пункты отправления и назначения обязательны", ErrValidation)
	}
	current, err := s.transportRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "перемещение")
	}
	current.Kind = in.Kind
	current.Origin = in.Origin
	current.Destination = in.Destination
	current.Departure = in.Departure
	current.Note = in.Note
	if err := s.transportRepo.Update(current); err != nil {
		return nil, notFoundOr(err, "перемещение")
	}
	return current, nil
}

// DeleteTransport удаляет перемещение.
func (s *TransportService) DeleteTransport(id string) error {
	if err := s.transportRepo.Delete(id); err != nil {
		return notFoundOr(err, "перемещение")
	}
	return nil
}

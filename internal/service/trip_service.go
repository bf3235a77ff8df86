package service

import (
	"fmt"

	"tripplanner/internal/model"
	"tripplanner/internal/repository"
)

// TripService содержит бизнес-логику, связанную с поездками.
type TripService struct {
	tripRepo *repository.TripRepository
}

// NewTripService создает новый сервис поездок.
func NewTripService(tripRepo *repository.TripRepository) *TripService {
	return &TripService{tripRepo: tripRepo}
}

// CreateTrip создает новую поездку с проверкой названия и границ дат.
func (s *TripService) CreateTrip(name, startDate, endDate string) (*model.Trip, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: название поездки обязательно", ErrValidation)
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	trip := &model.Trip{Name: name, StartDate: startDate, EndDate: endDate}
	id, err := createWithUniqueID(idExists(s.tripRepo.GetByID), func(id string) error {
		trip.ID = id
		return s.tripRepo.Create(trip)
	})
	if err != nil {
		return nil, err
	}
	trip.ID = id
	return trip, nil
}

// GetTrip возвращает поездку по идентификатору.
func (s *TripService) GetTrip(id string) (*model.Trip, error) {
	trip, err := s.tripRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "поездка")
	}
	return trip, nil
}

// ListTrips возвращает все поездки.
func (s *TripService) ListTrips() ([]model.Trip, error) {
	return s.tripRepo.List()
}

// UpdateTrip обновляет название и даты поездки.
func (s *TripService) UpdateTrip(id, name, startDate, endDate string) (*model.Trip, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: название поездки обязательно", ErrValidation)
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	trip := &model.Trip{ID: id, Name: name, StartDate: startDate, EndDate: endDate}
	if err := s.tripRepo.Update(trip); err != nil {
		return nil, notFoundOr(err, "поездка")
	}
	return s.GetTrip(id)
}

// DeleteTrip удаляет поездку со всем содержимым.
func (s *TripService) DeleteTrip(id string) error {
	if err := s.tripRepo.Delete(id); err != nil {
		return notFoundOr(err, "поездка")
	}
	return nil
}

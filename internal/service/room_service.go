package service

import (
	"fmt"

	"tripplanner/internal/model"
	"tripplanner/internal/repository"
)

// RoomService содержит бизнес-логику, связанную с комнатами.
type RoomService struct {
	roomRepo *repository.RoomRepository
	tripRepo *repository.TripRepository
}

// NewRoomService создает новый сервис комнат.
func NewRoomService(roomRepo *repository.RoomRepository, tripRepo *repository.TripRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo, tripRepo: tripRepo}
}

// CreateRoom добавляет комнату в поездку.
func (s *RoomService) CreateRoom(tripID, name string, capacity int) (*model.Room, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: название комнаты обязательно", ErrValidation)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w: вместимость комнаты должна быть не меньше 1", ErrValidation)
	}
	if _, err := s.tripRepo.GetByID(tripID); err != nil {
		return nil, notFoundOr(err, "поездка")
	}
	room := &model.Room{TripID: tripID, Name: name, Capacity: capacity}
	id, err := createWithUniqueID(idExists(s.roomRepo.GetByID), func(id string) error {
		room.ID = id
		return s.roomRepo.Create(room)
	})
	if err != nil {
		return nil, err
	}
	room.ID = id
	return room, nil
}

// GetRoom возвращает комнату по идентификатору.
func (s *RoomService) GetRoom(id string) (*model.Room, error) {
	room, err := s.roomRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "комната")
	}
	return room, nil
}

// ListRooms возвращает комнаты поездки.
func (s *RoomService) ListRooms(tripID string) ([]model.Room, error) {
	return s.roomRepo.ListByTrip(tripID)
}

// UpdateRoom обновляет название и вместимость комнаты.
func (s *RoomService) UpdateRoom(id, name string, capacity int) (*model.Room, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: название комнаты обязательно", ErrValidation)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w: вместимость комнаты должна быть не меньше 1", ErrValidation)
	}
	current, err := s.roomRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "комната")
	}
	current.Name = name
	current.Capacity = capacity
	if err := s.roomRepo.Update(current); err != nil {
		return nil, notFoundOr(err, "комната")
	}
	return current, nil
}

// DeleteRoom удаляет комнату вместе с ее размещениями.
func (s *RoomService) DeleteRoom(id string) error {
	if err := s.roomRepo.Delete(id); err != nil {
		return notFoundOr(err, "комната")
	}
	return nil
}

package service

import (
	"database/sql"
	"errors"
	"fmt"

	"tripplanner/internal/model"
)

// Минимальная длина токена публичной ссылки. Более короткие строки даже не
// ищутся в хранилище.
const minShareTokenLen = 10

// ShareStore — операции хранения, необходимые сервису публичных ссылок.
type ShareStore interface {
	GetByID(id string) (*model.Trip, error)
	GetByShareID(shareID string) (*model.Trip, error)
	SetShareID(tripID, shareID string) error
}

// ShareResolution — типизированный итог разрешения токена. Неизвестный токен —
// это Found=false, а не ошибка: интерфейс показывает «не найдено».
type ShareResolution struct {
	Found bool        `json:"found"`
	Trip  *model.Trip `json:"trip,omitempty"`
}

// ShareService управляет публичными ссылками на поездки.
type ShareService struct {
	store ShareStore
}

// NewShareService создает новый сервис публичных ссылок.
func NewShareService(store ShareStore) *ShareService {
	return &ShareService{store: store}
}

// CreateShareLink выдает токен публичной ссылки поездки. Повторный вызов
// возвращает уже существующий токен.
func (s *ShareService) CreateShareLink(tripID string) (string, error) {
	trip, err := s.store.GetByID(tripID)
	if err != nil {
		return "", notFoundOr(err, "поездка")
	}
	if trip.ShareID != nil && *trip.ShareID != "" {
		return *trip.ShareID, nil
	}
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		token, err := NewShareToken()
		if err != nil {
			return "", err
		}
		if _, err := s.store.GetByShareID(token); err == nil {
			continue // токен уже занят другой поездкой
		} else if !errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("ошибка при проверке токена: %w", err)
		}
		if err := s.store.SetShareID(tripID, token); err != nil {
			if errors.Is(err, ErrConstraint) {
				continue
			}
			return "", err
		}
		return token, nil
	}
	return "", ErrCreationFailed
}

// ResolveShareLink разрешает токен публичной ссылки. Некорректный или
// неизвестный токен дает Found=false без ошибки.
func (s *ShareService) ResolveShareLink(token string) (*ShareResolution, error) {
	if !validShareToken(token) {
		return &ShareResolution{}, nil
	}
	trip, err := s.store.GetByShareID(token)
	if errors.Is(err, sql.ErrNoRows) {
		return &ShareResolution{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при разрешении токена: %w", err)
	}
	return &ShareResolution{Found: true, Trip: trip}, nil
}

// validShareToken проверяет длину и URL-безопасный алфавит токена.
func validShareToken(token string) bool {
	if len(token) < minShareTokenLen {
		return false
	}
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

package service

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	idBytes         = 10 // 20 шестнадцатеричных символов
	shareTokenBytes = 12 // 16 символов base64url, минимум для ссылки — 10
	maxIDAttempts   = 3
)

// NewID генерирует случайный идентификатор записи.
func NewID() (string, error) {
	buf := make([]byte, idBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("не удалось получить случайные байты: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewShareToken генерирует короткий URL-безопасный токен публичной ссылки.
func NewShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("не удалось получить случайные байты: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateUniqueID подбирает свободный идентификатор: генерирует случайный ID,
// проверяет занятость через exists и повторяет при коллизии. После maxAttempts
// неудачных попыток возвращает ErrCreationFailed.
func GenerateUniqueID(exists func(string) (bool, error), maxAttempts int) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		id, err := NewID()
		if err != nil {
			return "", err
		}
		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrCreationFailed
}

// createWithUniqueID создает запись со свежим уникальным идентификатором.
// Коллизия при вставке (гонка между проверкой и INSERT) повторяется с новым
// идентификатором, прочие ошибки возвращаются как есть.
func createWithUniqueID(exists func(string) (bool, error), insert func(id string) error) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := GenerateUniqueID(exists, maxIDAttempts)
		if err != nil {
			return "", err
		}
		err = insert(id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrConstraint) {
			return "", err
		}
	}
	return "", ErrCreationFailed
}

// idExists строит проверку занятости идентификатора поверх геттера репозитория:
// найденная запись означает занятый ID, sql.ErrNoRows — свободный.
func idExists[T any](get func(string) (*T, error)) func(string) (bool, error) {
	return func(id string) (bool, error) {
		if _, err := get(id); err == nil {
			return true, nil
		} else if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		} else {
			return false, err
		}
	}
}

// notFoundOr превращает sql.ErrNoRows в ErrNotFound с пояснением, остальные
// ошибки возвращает без изменений.
func notFoundOr(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

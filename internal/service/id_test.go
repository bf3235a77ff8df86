package service

import (
	"errors"
	"testing"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewID()
		if err != nil {
			t.Fatalf("NewID: %v", err)
		}
		if len(id) != 20 {
			t.Fatalf("длина идентификатора %d, ожидалось 20: %q", len(id), id)
		}
		for _, r := range id {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
				t.Fatalf("идентификатор %q содержит не-шестнадцатеричный символ %q", id, r)
			}
		}
		if seen[id] {
			t.Fatalf("идентификатор %q повторился", id)
		}
		seen[id] = true
	}
}

func TestNewShareToken(t *testing.T) {
	token, err := NewShareToken()
	if err != nil {
		t.Fatalf("NewShareToken: %v", err)
	}
	if len(token) < minShareTokenLen {
		t.Fatalf("токен %q короче минимума %d", token, minShareTokenLen)
	}
	if !validShareToken(token) {
		t.Fatalf("свежий токен %q не проходит собственную валидацию", token)
	}
}

func TestGenerateUniqueIDRetriesCollisions(t *testing.T) {
	calls := 0
	exists := func(id string) (bool, error) {
		calls++
		return calls < 3, nil // первые две попытки заняты
	}
	id, err := GenerateUniqueID(exists, maxIDAttempts)
	if err != nil {
		t.Fatalf("GenerateUniqueID: %v", err)
	}
	if id == "" || calls != 3 {
		t.Errorf("id=%q после %d проверок, ожидалось 3", id, calls)
	}
}

func TestGenerateUniqueIDExhausted(t *testing.T) {
	exists := func(id string) (bool, error) { return true, nil }
	_, err := GenerateUniqueID(exists, maxIDAttempts)
	if !errors.Is(err, ErrCreationFailed) {
		t.Fatalf("ожидался ErrCreationFailed, получено %v", err)
	}
}

func TestGenerateUniqueIDPropagatesStoreError(t *testing.T) {
	boom := errors.New("хранилище недоступно")
	exists := func(id string) (bool, error) { return false, boom }
	_, err := GenerateUniqueID(exists, maxIDAttempts)
	if !errors.Is(err, boom) {
		t.Fatalf("ожидалась ошибка хранилища, получено %v", err)
	}
}

func TestCreateWithUniqueIDRetriesInsertRace(t *testing.T) {
	inserts := 0
	exists := func(id string) (bool, error) { return false, nil }
	insert := func(id string) error {
		inserts++
		if inserts == 1 {
			return ErrConstraint // гонка: ID занят между проверкой и вставкой
		}
		return nil
	}
	id, err := createWithUniqueID(exists, insert)
	if err != nil {
		t.Fatalf("createWithUniqueID: %v", err)
	}
	if id == "" || inserts != 2 {
		t.Errorf("id=%q после %d вставок, ожидалось 2", id, inserts)
	}
}

func TestCreateWithUniqueIDStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("отказ записи")
	exists := func(id string) (bool, error) { return false, nil }
	inserts := 0
	insert := func(id string) error {
		inserts++
		return boom
	}
	_, err := createWithUniqueID(exists, insert)
	if !errors.Is(err, boom) {
		t.Fatalf("ожидалась ошибка вставки, получено %v", err)
	}
	if inserts != 1 {
		t.Errorf("вставка повторена %d раз, ожидался единственный вызов", inserts)
	}
}

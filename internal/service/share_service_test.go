package service

import (
	"database/sql"
	"errors"
	"testing"

	"tripplanner/internal/model"
)

type fakeShareStore struct {
	trips   map[string]*model.Trip
	lookups int
}

func newFakeShareStore(trips ...*model.Trip) *fakeShareStore {
	s := &fakeShareStore{trips: make(map[string]*model.Trip)}
	for _, trip := range trips {
		s.trips[trip.ID] = trip
	}
	return s
}

func (s *fakeShareStore) GetByID(id string) (*model.Trip, error) {
	trip, ok := s.trips[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return trip, nil
}

func (s *fakeShareStore) GetByShareID(shareID string) (*model.Trip, error) {
	s.lookups++
	for _, trip := range s.trips {
		if trip.ShareID != nil && *trip.ShareID == shareID {
			return trip, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeShareStore) SetShareID(tripID, shareID string) error {
	trip, ok := s.trips[tripID]
	if !ok {
		return sql.ErrNoRows
	}
	for _, other := range s.trips {
		if other.ID != tripID && other.ShareID != nil && *other.ShareID == shareID {
			return ErrConstraint
		}
	}
	trip.ShareID = &shareID
	return nil
}

func TestCreateShareLinkIdempotent(t *testing.T) {
	store := newFakeShareStore(&model.Trip{ID: "t1", Name: "Лето 2024"})
	s := NewShareService(store)

	first, err := s.CreateShareLink("t1")
	if err != nil {
		t.Fatalf("CreateShareLink: %v", err)
	}
	if !validShareToken(first) {
		t.Fatalf("выданный токен %q некорректен", first)
	}

	second, err := s.CreateShareLink("t1")
	if err != nil {
		t.Fatalf("повторный CreateShareLink: %v", err)
	}
	if second != first {
		t.Errorf("повторный вызов выдал другой токен: %q != %q", second, first)
	}
}

func TestCreateShareLinkTripNotFound(t *testing.T) {
	s := NewShareService(newFakeShareStore())
	_, err := s.CreateShareLink("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидался ErrNotFound, получено %v", err)
	}
}

func TestResolveShareLink(t *testing.T) {
	token := "abcDEF123_-456"
	store := newFakeShareStore(&model.Trip{ID: "t1", Name: "Лето 2024", ShareID: &token})
	s := NewShareService(store)

	res, err := s.ResolveShareLink(token)
	if err != nil {
		t.Fatalf("ResolveShareLink: %v", err)
	}
	if !res.Found || res.Trip == nil || res.Trip.ID != "t1" {
		t.Fatalf("токен не разрешился: %+v", res)
	}
}

func TestResolveShareLinkUnknownToken(t *testing.T) {
	s := NewShareService(newFakeShareStore())
	res, err := s.ResolveShareLink("abcDEF123_-456")
	if err != nil {
		t.Fatalf("неизвестный токен не должен давать ошибку: %v", err)
	}
	if res.Found || res.Trip != nil {
		t.Fatalf("неизвестный токен: ожидался Found=false, получено %+v", res)
	}
}

func TestResolveShareLinkMalformedToken(t *testing.T) {
	store := newFakeShareStore()
	s := NewShareService(store)
	cases := []string{"", "short", "токен-кириллицей", "has space here", "semi;colon;123"}
	for _, token := range cases {
		res, err := s.ResolveShareLink(token)
		if err != nil {
			t.Errorf("токен %q: неожиданная ошибка %v", token, err)
		}
		if res.Found {
			t.Errorf("токен %q: ожидался Found=false", token)
		}
	}
	// Некорректные токены отсекаются до обращения к хранилищу.
	if store.lookups != 0 {
		t.Errorf("хранилище опрошено %d раз для заведомо некорректных токенов", store.lookups)
	}
}

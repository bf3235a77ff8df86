package tilecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// newTestManager поднимает тестовый тайл-сервер и менеджер с файловым кэшем во
// временном каталоге. Возвращает также счетчик обращений к серверу.
func newTestManager(t *testing.T, handler http.HandlerFunc) (*Manager, *atomic.Int64) {
	t.Helper()
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	m := NewManager(NewDirStorage(t.TempDir()))
	m.Client = srv.Client()
	m.Endpoints = []string{srv.URL}
	m.CacheName = "test-tiles"
	return m, &requests
}

func serveTile(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("png-data"))
}

func TestPreCacheTilesAll(t *testing.T) {
	m, requests := newTestManager(t, serveTile)
	res := m.PreCacheTiles(context.Background(), paris, Options{ZoomLevels: []int{14}, RadiusTiles: 1})
	if res.Total != 9 || res.Cached != 9 || res.Failed != 0 || res.Cancelled {
		t.Fatalf("неожиданный результат: %+v", res)
	}
	if res.EstimatedBytes != int64(9)*avgTileSizeBytes {
		t.Errorf("оценка размера %d, ожидалось %d", res.EstimatedBytes, int64(9)*avgTileSizeBytes)
	}
	if requests.Load() != 9 {
		t.Errorf("сделано %d запросов, ожидалось 9", requests.Load())
	}
}

func TestPreCacheTilesIdempotent(t *testing.T) {
	m, requests := newTestManager(t, serveTile)
	opts := Options{ZoomLevels: []int{14}, RadiusTiles: 1}

	first := m.PreCacheTiles(context.Background(), paris, opts)
	if first.Cached != first.Total {
		t.Fatalf("первый прогон: %+v", first)
	}
	before := requests.Load()

	// Повторный прогон обслуживается из кэша без единого запроса.
	second := m.PreCacheTiles(context.Background(), paris, opts)
	if second.Cached != second.Total || second.Failed != 0 {
		t.Fatalf("повторный прогон: %+v", second)
	}
	if requests.Load() != before {
		t.Errorf("повторный прогон сделал %d лишних запросов", requests.Load()-before)
	}
}

func TestPreCacheTilesCancelledBeforeStart(t *testing.T) {
	m, requests := newTestManager(t, serveTile)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := m.PreCacheTiles(ctx, paris, Options{ZoomLevels: []int{14}, RadiusTiles: 1})
	if !res.Cancelled || res.Cached != 0 || res.Failed != 0 {
		t.Fatalf("ожидался пустой отмененный результат, получено %+v", res)
	}
	if requests.Load() != 0 {
		t.Errorf("при отмене до старта сделано %d запросов", requests.Load())
	}
}

func TestPreCacheTilesFailuresTallied(t *testing.T) {
	m, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})
	res := m.PreCacheTiles(context.Background(), paris, Options{ZoomLevels: []int{14}, RadiusTiles: 1})
	if res.Cancelled {
		t.Fatal("сбои тайлов не должны отменять операцию")
	}
	if res.Failed != res.Total || res.Cached != 0 {
		t.Fatalf("ожидалось failed == total, получено %+v", res)
	}
	if res.EstimatedBytes != 0 {
		t.Errorf("оценка размера при нуле сохраненных тайлов: %d", res.EstimatedBytes)
	}
}

func TestPreCacheTilesProgress(t *testing.T) {
	m, _ := newTestManager(t, serveTile)
	var calls []int
	res := m.PreCacheTiles(context.Background(), paris, Options{
		ZoomLevels:  []int{14},
		RadiusTiles: 1,
		Progress: func(done, total int) {
			if total != 9 {
				t.Errorf("total в прогрессе: %d", total)
			}
			calls = append(calls, done)
		},
	})
	if len(calls) != res.Total {
		t.Fatalf("прогресс вызван %d раз при %d тайлах", len(calls), res.Total)
	}
	for i, done := range calls {
		if done != i+1 {
			t.Fatalf("прогресс не монотонен: %v", calls)
		}
	}
}

func TestPreCacheTilesStorageUnavailable(t *testing.T) {
	// Корень хранилища — обычный файл: открыть кэш невозможно.
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(NewDirStorage(blocked))
	res := m.PreCacheTiles(context.Background(), paris, Options{ZoomLevels: []int{14}, RadiusTiles: 1})
	if res != (Result{}) {
		t.Fatalf("при недоступном хранилище ожидался нулевой результат, получено %+v", res)
	}
}

func TestStatsClearAndIsTileCached(t *testing.T) {
	m, _ := newTestManager(t, serveTile)
	res := m.PreCacheTiles(context.Background(), paris, Options{ZoomLevels: []int{14}, RadiusTiles: 1})
	if res.Cached != 9 {
		t.Fatalf("подготовка кэша: %+v", res)
	}

	stats := m.Stats()
	if stats.Tiles != 9 || stats.EstimatedBytes != int64(9)*avgTileSizeBytes {
		t.Errorf("неожиданная сводка: %+v", stats)
	}
	if !m.IsTileCached(LatLonToTile(paris.Lat, paris.Lon, 14)) {
		t.Error("центральный тайл должен быть в кэше")
	}

	if !m.Clear() {
		t.Error("Clear над непустым кэшем должен вернуть true")
	}
	if m.Clear() {
		t.Error("повторный Clear должен вернуть false")
	}
	if m.Stats().Tiles != 0 {
		t.Error("после Clear кэш должен быть пуст")
	}
	if m.IsTileCached(LatLonToTile(paris.Lat, paris.Lon, 14)) {
		t.Error("после Clear тайл не должен находиться")
	}
}

func TestStatsStorageUnavailable(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(NewDirStorage(blocked))
	if stats := m.Stats(); stats.Tiles != 0 {
		t.Errorf("сводка недоступного хранилища: %+v", stats)
	}
	if m.IsTileCached(Tile{X: 1, Y: 1, Z: 5}) {
		t.Error("недоступное хранилище не содержит тайлов")
	}
}

package tilecache

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"tripplanner/internal/model"
)

const (
	// DefaultMaxTiles — глобальный предел числа тайлов одной операции.
	DefaultMaxTiles = 200
	// DefaultCacheName — имя кэша тайлов по умолчанию.
	DefaultCacheName = "trip-tiles"

	// avgTileSizeBytes — эвристическая средняя величина тайла OSM; оценка
	// занятого места, а не измерение.
	avgTileSizeBytes = 15 * 1024

	pauseEveryTiles = 10
	pauseDuration   = 50 * time.Millisecond
)

// DefaultZoomLevels — уровни зума, кэшируемые по умолчанию.
var DefaultZoomLevels = []int{12, 13, 14, 15, 16}

// Result — итог операции предварительного кэширования. После завершения
// операции не меняется.
type Result struct {
	Cached         int   `json:"cached"`
	Failed         int   `json:"failed"`
	Total          int   `json:"total"`
	Cancelled      bool  `json:"cancelled"`
	EstimatedBytes int64 `json:"estimatedBytes"`
}

// CacheStats — сводка по содержимому кэша тайлов.
type CacheStats struct {
	Tiles          int   `json:"tiles"`
	EstimatedBytes int64 `json:"estimatedBytes"`
}

// Options задает параметры операции предварительного кэширования.
type Options struct {
	ZoomLevels  []int              // уровни зума; пусто — DefaultZoomLevels
	RadiusTiles int                // радиус окрестности; 0 — радиус по умолчанию для зума
	MaxTiles    int                // глобальный предел; 0 — DefaultMaxTiles
	Progress    func(done, total int) // вызывается после каждого тайла
}

// Manager управляет предварительным кэшированием тайлов карты для офлайн-режима.
type Manager struct {
	Storage   Storage
	Client    *http.Client
	Endpoints []string
	CacheName string
}

// NewManager создает менеджер с настройками по умолчанию (тайл-сервер OSM,
// таймаут запроса 30 секунд).
func NewManager(storage Storage) *Manager {
	return &Manager{
		Storage:   storage,
		Client:    &http.Client{Timeout: 30 * time.Second},
		Endpoints: DefaultEndpoints,
		CacheName: DefaultCacheName,
	}
}

// PreCacheTiles последовательно скачивает и сохраняет тайлы вокруг центра.
// Операция не возвращает ошибок: сбой отдельного тайла попадает в счетчик
// Failed и не прерывает остальные; недоступное хранилище дает нулевой
// результат («кэширование здесь не поддерживается»); отмена контекста —
// частичный результат с Cancelled=true. Тайлы обходятся строго
// последовательно, поэтому прогресс монотонен, а нагрузка на сервер и память
// ограничена одним запросом.
func (m *Manager) PreCacheTiles(ctx context.Context, center model.Coordinates, opts Options) Result {
	zooms := opts.ZoomLevels
	if len(zooms) == 0 {
		zooms = DefaultZoomLevels
	}
	maxTiles := opts.MaxTiles
	if maxTiles <= 0 {
		maxTiles = DefaultMaxTiles
	}

	cache, err := m.Storage.Open(m.CacheName)
	if err != nil {
		log.Printf("Хранилище тайлов недоступно: %v", err)
		return Result{}
	}

	tiles := TilesToCache(center, zooms, opts.RadiusTiles, maxTiles)
	res := Result{Total: len(tiles)}
	for i, tile := range tiles {
		// Кооперативная проверка отмены перед каждым тайлом.
		if ctx.Err() != nil {
			res.Cancelled = true
			break
		}
		url := TileURL(m.Endpoints[i%len(m.Endpoints)], tile)
		if hit, err := cache.Match(url); err == nil && hit {
			res.Cached++ // уже в кэше — повторный прогон обходится без сети
		} else if data, err := m.fetchTile(ctx, url); err != nil {
			if ctx.Err() != nil {
				// Запрос оборван отменой, а не сервером.
				res.Cancelled = true
				break
			}
			res.Failed++
		} else if err := cache.Put(url, data); err != nil {
			res.Failed++
		} else {
			res.Cached++
		}
		if opts.Progress != nil {
			opts.Progress(res.Cached+res.Failed, res.Total)
		}
		// Каждый десятый тайл — короткая пауза, чтобы не заваливать сервер.
		if (i+1)%pauseEveryTiles == 0 && i+1 < len(tiles) {
			select {
			case <-ctx.Done():
			case <-time.After(pauseDuration):
			}
		}
	}
	res.EstimatedBytes = int64(res.Cached) * avgTileSizeBytes
	return res
}

// fetchTile скачивает один тайл. Контекст пробрасывается в запрос, поэтому
// отмена прерывает и запрос в полете.
func (m *Manager) fetchTile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := m.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("тайл-сервер вернул статус %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Stats возвращает число сохраненных тайлов и оценку занятого места. При
// недоступном хранилище — пустая сводка без ошибки.
func (m *Manager) Stats() CacheStats {
	cache, err := m.Storage.Open(m.CacheName)
	if err != nil {
		return CacheStats{}
	}
	keys, err := cache.Keys()
	if err != nil {
		return CacheStats{}
	}
	return CacheStats{
		Tiles:          len(keys),
		EstimatedBytes: int64(len(keys)) * avgTileSizeBytes,
	}
}

// Clear удаляет кэш тайлов целиком. Возвращает false, если удалять было нечего
// или хранилище недоступно.
func (m *Manager) Clear() bool {
	ok, err := m.Storage.Delete(m.CacheName)
	if err != nil {
		log.Printf("Не удалось удалить кэш тайлов: %v", err)
		return false
	}
	return ok
}

// IsTileCached проверяет наличие одного тайла в кэше (по любому из поддоменов).
func (m *Manager) IsTileCached(tile Tile) bool {
	cache, err := m.Storage.Open(m.CacheName)
	if err != nil {
		return false
	}
	for _, ep := range m.Endpoints {
		if hit, err := cache.Match(TileURL(ep, tile)); err == nil && hit {
			return true
		}
	}
	return false
}

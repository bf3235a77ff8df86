package tilecache

import (
	"fmt"
	"math"

	"tripplanner/internal/model"
)

// Tile — индекс тайла карты в стандартной схеме slippy map: колонка X, строка Y
// на уровне зума Z, 0 <= X,Y < 2^Z.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// DefaultEndpoints — базовые адреса тайл-сервера OpenStreetMap. Поддомены
// перебираются по кругу для неформального распределения нагрузки.
var DefaultEndpoints = []string{
	"https://a.tile.openstreetmap.org",
	"https://b.tile.openstreetmap.org",
	"https://c.tile.openstreetmap.org",
}

// LatLonToTile переводит географические координаты в индекс тайла на заданном
// зуме (проекция Web Mercator). Индексы ограничиваются сеткой [0, 2^zoom-1]:
// приполярные широты и долготы за антимеридианом не выходят за ее пределы.
func LatLonToTile(lat, lon float64, zoom int) Tile {
	n := float64(int64(1) << uint(zoom))
	x := math.Floor((lon + 180.0) / 360.0 * n)
	latRad := lat * math.Pi / 180.0
	y := math.Floor((1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * n)
	return Tile{
		X: int(clamp(x, 0, n-1)),
		Y: int(clamp(y, 0, n-1)),
		Z: zoom,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DefaultRadius возвращает радиус окрестности по умолчанию для зума: обзорные
// зумы получают широкую окрестность, детальные — узкую, чтобы суммарное число
// тайлов оставалось ограниченным по всему диапазону.
func DefaultRadius(zoom int) int {
	r := int(math.Floor(3.0 - float64(zoom-10)/3.0))
	if r < 1 {
		return 1
	}
	return r
}

// TilesToCache перечисляет тайлы для офлайн-кэширования вокруг центра: на
// каждом зуме квадрат (2r+1)×(2r+1) вокруг центрального тайла, индексы за
// пределами сетки отбрасываются. maxTiles — глобальный предел: перечисление
// (зумы в заданном порядке, внутри зума построчно) обрывается, как только
// предел достигнут. Результат детерминирован для одинаковых аргументов.
func TilesToCache(center model.Coordinates, zoomLevels []int, radiusTiles, maxTiles int) []Tile {
	if maxTiles <= 0 {
		maxTiles = DefaultMaxTiles
	}
	tiles := make([]Tile, 0, maxTiles)
	for _, zoom := range zoomLevels {
		radius := radiusTiles
		if radius <= 0 {
			radius = DefaultRadius(zoom)
		}
		c := LatLonToTile(center.Lat, center.Lon, zoom)
		limit := 1 << uint(zoom)
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				x, y := c.X+dx, c.Y+dy
				if x < 0 || y < 0 || x >= limit || y >= limit {
					continue
				}
				if len(tiles) >= maxTiles {
					return tiles
				}
				tiles = append(tiles, Tile{X: x, Y: y, Z: zoom})
			}
		}
	}
	return tiles
}

// TileURL строит адрес тайла на заданном базовом адресе.
func TileURL(endpoint string, t Tile) string {
	return fmt.Sprintf("%s/%d/%d/%d.png", endpoint, t.Z, t.X, t.Y)
}

package tilecache

import (
	"reflect"
	"testing"

	"tripplanner/internal/model"
)

var paris = model.Coordinates{Lat: 48.8566, Lon: 2.3522}

func TestLatLonToTileBounds(t *testing.T) {
	lats := []float64{-90, -89.9, -66.5, -45, 0, 45, 66.5, 89.9, 90}
	lons := []float64{-180, -135, -90, 0, 90, 135, 180}
	zooms := []int{0, 1, 3, 5, 10, 14, 19}
	for _, zoom := range zooms {
		limit := 1 << uint(zoom)
		for _, lat := range lats {
			for _, lon := range lons {
				tile := LatLonToTile(lat, lon, zoom)
				if tile.X < 0 || tile.X >= limit || tile.Y < 0 || tile.Y >= limit {
					t.Errorf("LatLonToTile(%v, %v, %d) = %+v вне сетки [0, %d)",
						lat, lon, zoom, tile, limit)
				}
				if tile.Z != zoom {
					t.Errorf("LatLonToTile(%v, %v, %d): Z = %d", lat, lon, zoom, tile.Z)
				}
			}
		}
	}
}

func TestLatLonToTileParis(t *testing.T) {
	tile := LatLonToTile(paris.Lat, paris.Lon, 14)
	if tile.X != 8299 || tile.Y != 5636 {
		t.Errorf("тайл Парижа на z=14: %+v, ожидался {8299 5636 14}", tile)
	}
}

func TestDefaultRadius(t *testing.T) {
	cases := []struct {
		zoom, want int
	}{
		{8, 3}, {10, 3}, {12, 2}, {14, 1}, {16, 1}, {19, 1},
	}
	for _, c := range cases {
		if got := DefaultRadius(c.zoom); got != c.want {
			t.Errorf("DefaultRadius(%d) = %d, ожидалось %d", c.zoom, got, c.want)
		}
	}
}

func TestTilesToCacheParisNeighborhood(t *testing.T) {
	tiles := TilesToCache(paris, []int{14}, 1, 200)
	if len(tiles) != 9 {
		t.Fatalf("окрестность 3×3 дала %d тайлов, ожидалось 9", len(tiles))
	}
	for _, tile := range tiles {
		if tile.Z != 14 {
			t.Errorf("тайл %+v не на зуме 14", tile)
		}
	}
}

func TestTilesToCacheGlobalCap(t *testing.T) {
	// Предел глобальный: обрыв в середине уровня зума.
	tiles := TilesToCache(paris, []int{10, 12, 14}, 3, 25)
	if len(tiles) != 25 {
		t.Fatalf("получено %d тайлов, предел 25", len(tiles))
	}
	// Первый уровень (радиус 3 — 49 тайлов) не помещается целиком.
	for _, tile := range tiles {
		if tile.Z != 10 {
			t.Errorf("при обрыве на первом уровне тайл %+v не на зуме 10", tile)
		}
	}
}

func TestTilesToCacheDeterministic(t *testing.T) {
	a := TilesToCache(paris, []int{12, 14}, 0, 50)
	b := TilesToCache(paris, []int{12, 14}, 0, 50)
	if !reflect.DeepEqual(a, b) {
		t.Error("повторный вызов с теми же аргументами дал другой список тайлов")
	}
}

func TestTilesToCacheEdgeOfGrid(t *testing.T) {
	// У края сетки часть окрестности отбрасывается, а не заворачивается.
	corner := model.Coordinates{Lat: 85.0511, Lon: -180}
	tiles := TilesToCache(corner, []int{2}, 1, 200)
	limit := 1 << 2
	for _, tile := range tiles {
		if tile.X < 0 || tile.X >= limit || tile.Y < 0 || tile.Y >= limit {
			t.Errorf("тайл %+v вне сетки зума 2", tile)
		}
	}
	if len(tiles) >= 9 {
		t.Errorf("в углу сетки окрестность должна быть усечена, получено %d тайлов", len(tiles))
	}
}

func TestTileURL(t *testing.T) {
	got := TileURL("https://a.tile.openstreetmap.org", Tile{X: 8299, Y: 5633, Z: 14})
	want := "https://a.tile.openstreetmap.org/14/8299/5633.png"
	if got != want {
		t.Errorf("TileURL = %q, ожидалось %q", got, want)
	}
}

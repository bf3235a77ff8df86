package handler

import (
	"net/http"

	"tripplanner/internal/model"
	"tripplanner/internal/tilecache"

	"github.com/gin-gonic/gin"
)

// TileHandler обрабатывает HTTP-запросы офлайн-кэша карт.
type TileHandler struct {
	Manager *tilecache.Manager
}

// NewTileHandler создает новый обработчик кэша тайлов.
func NewTileHandler(m *tilecache.Manager) *TileHandler {
	return &TileHandler{Manager: m}
}

type preCacheRequest struct {
	Center      model.Coordinates `json:"center"`
	ZoomLevels  []int             `json:"zoomLevels"`
	RadiusTiles int               `json:"radiusTiles"`
	MaxTiles    int               `json:"maxTiles"`
}

// PreCache обработчик для POST /api/tiles/precache. Выполняется синхронно;
// разрыв соединения клиентом отменяет операцию через контекст запроса, ответ —
// итоговая сводка (в том числе частичная при отмене).
func (h *TileHandler) PreCache(c *gin.Context) {
	var req preCacheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	if req.Center.Lat < -90 || req.Center.Lat > 90 || req.Center.Lon < -180 || req.Center.Lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Координаты центра вне допустимого диапазона"})
		return
	}
	res := h.Manager.PreCacheTiles(c.Request.Context(), req.Center, tilecache.Options{
		ZoomLevels:  req.ZoomLevels,
		RadiusTiles: req.RadiusTiles,
		MaxTiles:    req.MaxTiles,
	})
	c.JSON(http.StatusOK, res)
}

// Stats обработчик для GET /api/tiles/stats.
func (h *TileHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Manager.Stats())
}

// Clear обработчик для DELETE /api/tiles — удаляет кэш тайлов целиком.
func (h *TileHandler) Clear(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cleared": h.Manager.Clear()})
}

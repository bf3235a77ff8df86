package handler

import (
	"errors"
	"net/http"

	"tripplanner/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	TripService       *service.TripService
	RoomService       *service.RoomService
	PersonService     *service.PersonService
	AssignmentService *service.AssignmentService
	TransportService  *service.TransportService
	ShareService      *service.ShareService
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(ts *service.TripService, rs *service.RoomService, ps *service.PersonService,
	as *service.AssignmentService, trs *service.TransportService, ss *service.ShareService) *Handler {
	return &Handler{
		TripService:       ts,
		RoomService:       rs,
		PersonService:     ps,
		AssignmentService: as,
		TransportService:  trs,
		ShareService:      ss,
	}
}

// httpStatus сопоставляет ошибку бизнес-логики с HTTP-статусом.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrCapacityExceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"error": err.Error()})
}

// --- Поездки ---

type tripRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// CreateTrip обработчик для POST /api/trips.
func (h *Handler) CreateTrip(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	trip, err := h.TripService.CreateTrip(req.Name, req.StartDate, req.EndDate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// ListTrips обработчик для GET /api/trips.
func (h *Handler) ListTrips(c *gin.Context) {
	trips, err := h.TripService.ListTrips()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GetTrip обработчик для GET /api/trips/:id.
func (h *Handler) GetTrip(c *gin.Context) {
	trip, err := h.TripService.GetTrip(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// UpdateTrip обработчик для PUT /api/trips/:id.
func (h *Handler) UpdateTrip(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	trip, err := h.TripService.UpdateTrip(c.Param("id"), req.Name, req.StartDate, req.EndDate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DeleteTrip обработчик для DELETE /api/trips/:id. Удаляет поездку со всем
// содержимым.
func (h *Handler) DeleteTrip(c *gin.Context) {
	if err := h.TripService.DeleteTrip(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Комнаты ---

type roomRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// CreateRoom обработчик для POST /api/trips/:id/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	room, err := h.RoomService.CreateRoom(c.Param("id"), req.Name, req.Capacity)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// ListRooms обработчик для GET /api/trips/:id/rooms.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.RoomService.ListRooms(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// UpdateRoom обработчик для PUT /api/rooms/:id.
func (h *Handler) UpdateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	room, err := h.RoomService.UpdateRoom(c.Param("id"), req.Name, req.Capacity)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom обработчик для DELETE /api/rooms/:id.
func (h *Handler) DeleteRoom(c *gin.Context) {
	if err := h.RoomService.DeleteRoom(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RoomOccupancy обработчик для GET /api/rooms/:id/occupancy — пиковая занятость
// комнаты на интервале дат; интерфейс сравнивает ее с вместимостью.
func (h *Handler) RoomOccupancy(c *gin.Context) {
	peak, err := h.AssignmentService.RoomOccupancy(
		c.Param("id"), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"occupancy": peak})
}

// --- Участники ---

type personRequest struct {
	Name string `json:"name"`
}

// CreatePerson обработчик для POST /api/trips/:id/persons.
func (h *Handler) CreatePerson(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	person, err := h.PersonService.CreatePerson(c.Param("id"), req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, person)
}

// ListPersons обработчик для GET /api/trips/:id/persons.
func (h *Handler) ListPersons(c *gin.Context) {
	persons, err := h.PersonService.ListPersons(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, persons)
}

// UpdatePerson обработчик для PUT /api/persons/:id.
func (h *Handler) UpdatePerson(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	person, err := h.PersonService.UpdatePerson(c.Param("id"), req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// DeletePerson обработчик для DELETE /api/persons/:id.
func (h *Handler) DeletePerson(c *gin.Context) {
	if err := h.PersonService.DeletePerson(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Размещения ---

// CreateAssignment обработчик для POST /api/trips/:id/assignments. Пересечение
// с существующим размещением участника дает 409.
func (h *Handler) CreateAssignment(c *gin.Context) {
	var req service.AssignmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	a, err := h.AssignmentService.CreateAssignment(c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// ListAssignments обработчик для GET /api/trips/:id/assignments; параметр
// personId сужает список до одного участника.
func (h *Handler) ListAssignments(c *gin.Context) {
	tripID := c.Param("id")
	if personID := c.Query("personId"); personID != "" {
		assignments, err := h.AssignmentService.ListByPerson(tripID, personID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, assignments)
		return
	}
	assignments, err := h.AssignmentService.ListByTrip(tripID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// UpdateAssignment обработчик для PUT /api/assignments/:id.
func (h *Handler) UpdateAssignment(c *gin.Context) {
	var req service.AssignmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	a, err := h.AssignmentService.UpdateAssignment(c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAssignment обработчик для DELETE /api/assignments/:id.
func (h *Handler) DeleteAssignment(c *gin.Context) {
	if err := h.AssignmentService.DeleteAssignment(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckConflict обработчик для GET /api/trips/:id/conflict — проверка
// пересечения без записи, для подсветки в форме до сохранения.
func (h *Handler) CheckConflict(c *gin.Context) {
	personID := c.Query("personId")
	start := c.Query("startDate")
	end := c.Query("endDate")
	if personID == "" || start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Параметры personId, startDate и endDate обязательны"})
		return
	}
	conflict, err := h.AssignmentService.CheckConflict(
		c.Param("id"), personID, start, end, c.Query("excludeId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflict": conflict})
}

// --- Транспорт ---

// CreateTransport обработчик для POST /api/trips/:id/transports.
func (h *Handler) CreateTransport(c *gin.Context) {
	var req service.TransportInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	t, err := h.TransportService.CreateTransport(c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// ListTransports обработчик для GET /api/trips/:id/transports.
func (h *Handler) ListTransports(c *gin.Context) {
	transports, err := h.TransportService.ListTransports(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, transports)
}

// UpdateTransport обработчик для PUT /api/transports/:id.
func (h *Handler) UpdateTransport(c *gin.Context) {
	var req service.TransportInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	t, err := h.TransportService.UpdateTransport(c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTransport обработчик для DELETE /api/transports/:id.
func (h *Handler) DeleteTransport(c *gin.Context) {
	if err := h.TransportService.DeleteTransport(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Публичные ссылки ---

// CreateShareLink обработчик для POST /api/trips/:id/share. Повторный вызов
// возвращает существующий токен.
func (h *Handler) CreateShareLink(c *gin.Context) {
	token, err := h.ShareService.CreateShareLink(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shareId": token, "url": "/share/" + token})
}

// ResolveShare обработчик для GET /share/:shareId. Неизвестный или
// некорректный токен — 404 с found=false, а не ошибка.
func (h *Handler) ResolveShare(c *gin.Context) {
	res, err := h.ShareService.ResolveShareLink(c.Param("shareId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !res.Found {
		c.JSON(http.StatusNotFound, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

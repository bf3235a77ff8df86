package main

import (
	"log"
	"os"
	"path/filepath"

	"tripplanner/internal/handler"
	"tripplanner/internal/repository"
	"tripplanner/internal/service"
	"tripplanner/internal/tilecache"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL драйвер
)

func main() {
	// Читаем параметры подключения к БД из переменных окружения
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	dsn := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser + " password=" + dbPass + " dbname=" + dbName + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}
	// Выполняем миграции (если есть). Каждая миграция применяется в собственной
	// транзакции на одном соединении.
	files, err := filepath.Glob("migrations/*.sql")
	if err == nil {
		for _, file := range files {
			content, err := os.ReadFile(file)
			if err != nil {
				log.Printf("Не удалось прочитать миграцию %s: %v", file, err)
				continue
			}
			tx, err := db.Begin()
			if err != nil {
				log.Printf("Ошибка при инициации транзакции миграции: %v", err)
				continue
			}
			if _, err := tx.Exec(string(content)); err != nil {
				tx.Rollback()
				log.Printf("Миграция %s завершилась ошибкой: %v", file, err)
				continue
			}
			if err := tx.Commit(); err != nil {
				log.Printf("Не удалось применить миграцию %s: %v", file, err)
				continue
			}
			log.Printf("Миграция %s применена.", file)
		}
	}

	// Инициализируем репозитории
	tripRepo := repository.NewTripRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	personRepo := repository.NewPersonRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	transportRepo := repository.NewTransportRepository(db)

	// Политика вместимости комнат: "warn" (по умолчанию) или "block"
	capacityPolicy := service.CapacityPolicy(os.Getenv("CAPACITY_POLICY"))

	// Инициализируем сервисы
	tripService := service.NewTripService(tripRepo)
	roomService := service.NewRoomService(roomRepo, tripRepo)
	personService := service.NewPersonService(personRepo, tripRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, roomRepo, personRepo, capacityPolicy)
	transportService := service.NewTransportService(transportRepo, tripRepo)
	shareService := service.NewShareService(tripRepo)

	// Кэш тайлов для офлайн-карт
	tileDir := os.Getenv("TILE_CACHE_DIR")
	if tileDir == "" {
		tileDir = "./tilecache"
	}
	tileManager := tilecache.NewManager(tilecache.NewDirStorage(tileDir))

	// Создаем обработчики и регистрируем маршруты
	h := handler.NewHandler(tripService, roomService, personService, assignmentService, transportService, shareService)
	th := handler.NewTileHandler(tileManager)
	router := gin.Default()
	api := router.Group("/api")
	{
		api.POST("/trips", h.CreateTrip)
		api.GET("/trips", h.ListTrips)
		api.GET("/trips/:id", h.GetTrip)
		api.PUT("/trips/:id", h.UpdateTrip)
		api.DELETE("/trips/:id", h.DeleteTrip)

		api.POST("/trips/:id/rooms", h.CreateRoom)
		api.GET("/trips/:id/rooms", h.ListRooms)
		api.PUT("/rooms/:id", h.UpdateRoom)
		api.DELETE("/rooms/:id", h.DeleteRoom)
		api.GET("/rooms/:id/occupancy", h.RoomOccupancy)

		api.POST("/trips/:id/persons", h.CreatePerson)
		api.GET("/trips/:id/persons", h.ListPersons)
		api.PUT("/persons/:id", h.UpdatePerson)
		api.DELETE("/persons/:id", h.DeletePerson)

		api.POST("/trips/:id/assignments", h.CreateAssignment)
		api.GET("/trips/:id/assignments", h.ListAssignments)
		api.GET("/trips/:id/conflict", h.CheckConflict)
		api.PUT("/assignments/:id", h.UpdateAssignment)
		api.DELETE("/assignments/:id", h.DeleteAssignment)

		api.POST("/trips/:id/transports", h.CreateTransport)
		api.GET("/trips/:id/transports", h.ListTransports)
		api.PUT("/transports/:id", h.UpdateTransport)
		api.DELETE("/transports/:id", h.DeleteTransport)

		api.POST("/trips/:id/share", h.CreateShareLink)

		api.POST("/tiles/precache", th.PreCache)
		api.GET("/tiles/stats", th.Stats)
		api.DELETE("/tiles", th.Clear)
	}
	// Публичная ссылка на поездку
	router.GET("/share/:shareId", h.ResolveShare)

	// Health-check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Запускаем HTTP-сервер
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"tripplanner/internal/model"
	"tripplanner/internal/repository"
	"tripplanner/internal/service"
	"tripplanner/internal/tilecache"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	// Подключение к базе данных
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "db"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort,
		os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_NAME"),
	)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}

	// Инициализация репозиториев и сервисов
	tripRepo := repository.NewTripRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	personRepo := repository.NewPersonRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	tripService := service.NewTripService(tripRepo)
	roomService := service.NewRoomService(roomRepo, tripRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, roomRepo, personRepo, "")
	shareService := service.NewShareService(tripRepo)

	tileDir := os.Getenv("TILE_CACHE_DIR")
	if tileDir == "" {
		tileDir = "./tilecache"
	}
	tileManager := tilecache.NewManager(tilecache.NewDirStorage(tileDir))

	// Базовый адрес для публичных ссылок
	publicURL := os.Getenv("PUBLIC_URL")
	if publicURL == "" {
		publicURL = "http://localhost:8080"
	}

	// Инициализация Telegram Bot API
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		log.Fatal("Не указан токен бота (BOT_TOKEN)")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Fatal("Ошибка инициализации бота:", err)
	}
	log.Printf("Запущен бот %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	// Состояние диалогов: ожидание геоточки для офлайн-карт
	pendingPrecache := make(map[int64]bool)

	for update := range updates {
		// --- CallbackQuery (inline buttons) ---
		if cq := update.CallbackQuery; cq != nil {
			bot.Request(tgbotapi.NewCallback(cq.ID, ""))

			fromID := cq.From.ID
			data := cq.Data

			switch {
			// Карточка поездки
			case strings.HasPrefix(data, "TRIP_"):
				tripID := strings.TrimPrefix(data, "TRIP_")
				trip, err := tripService.GetTrip(tripID)
				if err != nil {
					bot.Send(tgbotapi.NewMessage(fromID, "Поездка не найдена."))
					continue
				}
				rooms, _ := roomService.ListRooms(tripID)
				assignments, _ := assignmentService.ListByTrip(tripID)
				text := fmt.Sprintf(
					"*%s*\n%s — %s\nКомнат: %d, размещений: %d",
					trip.Name, trip.StartDate, trip.EndDate, len(rooms), len(assignments),
				)
				msg := tgbotapi.NewMessage(fromID, text)
				msg.ParseMode = "Markdown"

				btnShare := tgbotapi.NewInlineKeyboardButtonData("Поделиться", "SHARE_"+trip.ID)
				btnMap := tgbotapi.NewInlineKeyboardButtonData("Офлайн-карты", "MAP_"+trip.ID)
				row := tgbotapi.NewInlineKeyboardRow(btnShare, btnMap)
				msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)

				bot.Send(msg)

			// Публичная ссылка
			case strings.HasPrefix(data, "SHARE_"):
				tripID := strings.TrimPrefix(data, "SHARE_")
				token, err := shareService.CreateShareLink(tripID)
				if err != nil {
					bot.Send(tgbotapi.NewMessage(fromID, "Не удалось создать ссылку."))
				} else {
					bot.Send(tgbotapi.NewMessage(fromID, "Публичная ссылка: "+publicURL+"/share/"+token))
				}

			// Запрос геоточки для кэширования карт
			case strings.HasPrefix(data, "MAP_"):
				pendingPrecache[fromID] = true
				bot.Send(tgbotapi.NewMessage(fromID, "Отправьте геоточку — вокруг нее будут сохранены тайлы карты."))
			}

			continue
		}

		// --- Обычные сообщения ---
		if update.Message == nil {
			continue
		}
		msg := update.Message
		chatID := msg.Chat.ID
		userID := msg.From.ID

		// Геоточка для офлайн-карт
		if msg.Location != nil && pendingPrecache[userID] {
			delete(pendingPrecache, userID)
			bot.Send(tgbotapi.NewMessage(chatID, "Кэширую тайлы, это займет немного времени..."))
			center := model.Coordinates{Lat: msg.Location.Latitude, Lon: msg.Location.Longitude}
			res := tileManager.PreCacheTiles(context.Background(), center, tilecache.Options{})
			report := fmt.Sprintf(
				"Готово: сохранено %d из %d тайлов (ошибок: %d, ~%d КБ).",
				res.Cached, res.Total, res.Failed, res.EstimatedBytes/1024,
			)
			bot.Send(tgbotapi.NewMessage(chatID, report))
			continue
		}

		// Команды
		if msg.IsCommand() {
			switch msg.Command() {
			case "start":
				bot.Send(tgbotapi.NewMessage(chatID,
					"Это помощник планировщика отпуска. /trips — список поездок."))

			case "trips":
				trips, err := tripService.ListTrips()
				if err != nil || len(trips) == 0 {
					bot.Send(tgbotapi.NewMessage(chatID, "Поездок пока нет."))
					continue
				}
				btns := make([]tgbotapi.InlineKeyboardButton, len(trips))
				for i, trip := range trips {
					name := trip.Name
					if len(name) > 30 {
						name = name[:30] + "..."
					}
					btns[i] = tgbotapi.NewInlineKeyboardButtonData(name, "TRIP_"+trip.ID)
				}
				row := tgbotapi.NewInlineKeyboardRow(btns...)
				reply := tgbotapi.NewMessage(chatID, fmt.Sprintf("Поездки: %d", len(trips)))
				reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
				bot.Send(reply)

			case "cachestats":
				stats := tileManager.Stats()
				bot.Send(tgbotapi.NewMessage(chatID,
					fmt.Sprintf("В кэше %d тайлов (~%d КБ).", stats.Tiles, stats.EstimatedBytes/1024)))

			case "clearcache":
				if tileManager.Clear() {
					bot.Send(tgbotapi.NewMessage(chatID, "Кэш тайлов удален."))
				} else {
					bot.Send(tgbotapi.NewMessage(chatID, "Кэш тайлов уже пуст."))
				}
			}
			continue
		}
	}
}

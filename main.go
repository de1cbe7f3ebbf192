package main

import (
	"database/sql"
	"errors"
	"log"

	"cpv_go/internal/channel"
	"cpv_go/internal/config"
	"cpv_go/internal/offer"
	"cpv_go/internal/sweeper"
	"cpv_go/pkg/offers"
	"cpv_go/pkg/storage"
	"cpv_go/pkg/telegram"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация хранилища: Postgres, если задан DSN, иначе память
	// с JSON-снимком на диске
	store, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}

	// Инициализация шлюзов Telegram
	msg, pub := buildGateways(cfg)

	// Движок жизненного цикла предложений
	engine := offers.NewEngine(store, msg, pub, nil, cfg.PrecheckWindow())

	// Периодический свиппер дедлайнов
	sw := sweeper.New(engine, cfg.TickInterval())
	sw.Start()
	defer sw.Stop()

	// Настройка роутера
	r := setupRouter(engine, store)

	// Запуск сервера
	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildStore выбирает реализацию хранилища по конфигурации.
func buildStore(cfg *config.Config) (channel.Store, error) {
	if cfg.DatabaseURL != "" {
		conn, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := conn.Ping(); err != nil {
			return nil, err
		}
		db := storage.NewDB(conn)
		if err := db.EnsureSchema(); err != nil {
			return nil, err
		}
		log.Printf("[STORAGE] подключение к Postgres установлено")
		return db, nil
	}
	if cfg.SnapshotPath != "" {
		log.Printf("[STORAGE] память со снимком %s", cfg.SnapshotPath)
		return storage.OpenMemory(cfg.SnapshotPath)
	}
	log.Printf("[STORAGE] память без снимка: состояние не переживёт перезапуск")
	return storage.NewMemory(), nil
}

// buildGateways подключает Bot API. Без токена сервис работает в тихом
// режиме: переходы выполняются, публикации и уведомления не отправляются.
func buildGateways(cfg *config.Config) (offers.Messenger, offers.Publisher) {
	if cfg.BotToken == "" {
		log.Printf("[TELEGRAM] BOT_TOKEN не задан, публикации и уведомления отключены")
		return silentMessenger{}, silentPublisher{}
	}
	api, err := telegram.NewBot(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to connect bot: %v", err)
	}
	return telegram.NewMessenger(api), telegram.NewPublisher(api)
}

// Заглушки тихого режима. Публикация без бота считается неудачной:
// помечать предложение rewarded без реального поста нельзя.
type silentMessenger struct{}

func (silentMessenger) Notify(chatID int64, kind offers.NotificationKind, data map[string]string) error {
	log.Printf("[TELEGRAM] (тихий режим) уведомление %s для %d", kind, chatID)
	return nil
}

type silentPublisher struct{}

func (silentPublisher) Publish(destination int64, text string) (string, error) {
	return "", errBotDisabled
}

var errBotDisabled = errors.New("бот не подключён")

// Настройка маршрутов
func setupRouter(engine *offers.Engine, store channel.Store) *gin.Engine {
	r := gin.Default()

	offerGroup := r.Group("/offer")
	offer.SetupRoutes(offerGroup, engine, store)

	channelGroup := r.Group("/channel")
	channel.SetupRoutes(channelGroup, engine, store)

	sweeperGroup := r.Group("/sweeper")
	sweeper.SetupRoutes(sweeperGroup, engine)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Логирование зарегистрированных роутов
	log.Printf("[ROUTER] Routes initialized:")
	log.Printf("[ROUTER] POST /offer/CreateOffer")
	log.Printf("[ROUTER] POST /channel/CreateChannel")
	log.Printf("[ROUTER] POST /sweeper/Tick")
	log.Printf("[ROUTER] GET /health")

	return r
}

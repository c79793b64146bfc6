package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trade-journal/api"
	"trade-journal/auth"
	"trade-journal/cache"
	"trade-journal/config"
	"trade-journal/database"
	"trade-journal/database/accounts"
	"trade-journal/database/analytics"
	"trade-journal/database/playbooks"
	"trade-journal/database/trades"
	"trade-journal/database/webhooks"
	"trade-journal/events"
	"trade-journal/forex"
	"trade-journal/notifications"
	"trade-journal/realtime"
	"trade-journal/websocket"
)

// App represents the main application
type App struct {
	config *config.Config

	db    *database.Database
	sqlDB *database.SQLDB
	redis *cache.RedisClient

	accountRepo   *accounts.Repository
	tradeRepo     *trades.Repository
	playbookRepo  *playbooks.Repository
	webhookRepo   *webhooks.Repository
	analyticsRepo *analytics.Repository

	dispatcher     *events.Dispatcher
	broker         *realtime.Broker
	hub            *websocket.Hub
	webhookManager *notifications.WebhookManager
	statsCache     *cache.StatsCache
	sessions       *auth.Manager

	drawdownTracker *DrawdownTracker
	statsService    *StatsService
	pipCalc         *forex.Calculator

	apiServer *api.Server
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{config: cfg}
}

// Start wires the application together and runs it until interrupted
func (a *App) Start() error {
	// 1. Database connections: gorm for the repositories, a raw connection
	// for the analytics grouping queries.
	fmt.Println("🗄️  Connecting to database...")
	db, err := database.Connect(
		a.config.DatabaseHost,
		a.config.DatabasePort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	if err := a.db.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	sqlDB, err := database.NewSQLConnection(database.SQLConfig{
		Host:     a.config.DatabaseHost,
		Port:     a.config.DatabasePort,
		User:     a.config.DatabaseUser,
		Password: a.config.DatabasePassword,
		DBName:   a.config.DatabaseName,
	})
	if err != nil {
		return fmt.Errorf("analytics connection failed: %w", err)
	}
	a.sqlDB = sqlDB

	// 2. Redis connection
	fmt.Println("🧠 Connecting to Redis...")
	a.redis = cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if a.redis == nil {
		fmt.Println("⚠️  Redis connection failed. Caching disabled.")
	}

	// 3. Repositories
	gormDB := a.db.DB()
	a.accountRepo = accounts.NewRepository(gormDB)
	a.tradeRepo = trades.NewRepository(gormDB)
	a.playbookRepo = playbooks.NewRepository(gormDB)
	a.webhookRepo = webhooks.NewRepository(gormDB)
	a.analyticsRepo = analytics.NewRepository(a.sqlDB.Conn())

	// 4. Event fan-out: SSE broker, WebSocket hub, outbound webhooks and the
	// stats cache all listen on the same dispatcher.
	a.dispatcher = events.NewDispatcher()

	a.broker = realtime.NewBroker()
	go a.broker.Run()
	a.dispatcher.Register(a.broker)

	a.hub = websocket.NewHub()
	go a.hub.Run()
	a.dispatcher.Register(a.hub)

	a.webhookManager = notifications.NewWebhookManager(
		a.webhookRepo,
		a.redis,
		time.Duration(a.config.Journal.WebhookTimeoutSeconds)*time.Second,
		time.Duration(a.config.Journal.WebhookCacheTTLMinutes)*time.Minute,
	)
	a.dispatcher.Register(a.webhookManager)

	a.statsCache = cache.NewStatsCache(a.redis, time.Duration(a.config.Journal.StatsCacheTTLSeconds)*time.Second)
	a.dispatcher.Register(a.statsCache)

	// 5. Sessions
	a.sessions = auth.NewManager(
		a.redis,
		a.config.Auth.ServiceKey,
		time.Duration(a.config.Auth.SessionTTLHours)*time.Hour,
		a.config.Auth.Enabled,
	)
	if a.config.Auth.Enabled {
		log.Println("✅ Session auth ENABLED")
	} else {
		log.Println("ℹ️  Session auth DISABLED, trusting X-User-ID header")
	}

	// 6. Core services
	a.drawdownTracker = NewDrawdownTracker(a.accountRepo)
	a.statsService = NewStatsService(a.accountRepo, a.tradeRepo, a.drawdownTracker, a.statsCache, a.dispatcher)
	a.pipCalc = forex.NewCalculator(forex.DefaultRates)

	// 7. API server
	a.apiServer = api.NewServer(api.Config{
		AccountRepo:   a.accountRepo,
		TradeRepo:     a.tradeRepo,
		PlaybookRepo:  a.playbookRepo,
		WebhookRepo:   a.webhookRepo,
		AnalyticsRepo: a.analyticsRepo,
		Stats:         a.statsService,
		PipCalc:       a.pipCalc,
		WebhookMgr:    a.webhookManager,
		Broker:        a.broker,
		Hub:           a.hub,
		Sessions:      a.sessions,
		Dispatch:      a.dispatcher,
		CORSOrigin:    a.config.CORSOrigin,
		ImportMaxRows: a.config.Journal.ImportMaxRows,
		DailyPnLDays:  a.config.Journal.DailyPnLDefaultDays,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.apiServer.Start(a.config.APIPort)
	}()

	// 8. Wait for interrupt and perform graceful shutdown
	return a.gracefulShutdown(serverErr)
}

// gracefulShutdown blocks until an interrupt or server failure, then drains
// the HTTP server and closes the connections.
func (a *App) gracefulShutdown(serverErr chan error) error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("API server failed: %w", err)
	case sig := <-interrupt:
		log.Printf("🛑 Received signal %v, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.apiServer.Shutdown(ctx); err != nil {
		log.Printf("⚠️  API server shutdown: %v", err)
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️  Redis close: %v", err)
		}
	}
	if err := a.sqlDB.Close(); err != nil {
		log.Printf("⚠️  Analytics connection close: %v", err)
	}
	if err := a.db.Close(); err != nil {
		log.Printf("⚠️  Database close: %v", err)
	}

	log.Println("✅ Shutdown complete")
	return nil
}

package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"trade-journal/auth"
	"trade-journal/database/accounts"
	"trade-journal/database/analytics"
	"trade-journal/database/playbooks"
	"trade-journal/database/trades"
	"trade-journal/database/types"
	"trade-journal/database/webhooks"
	"trade-journal/events"
	"trade-journal/forex"
	"trade-journal/notifications"
	"trade-journal/realtime"
	"trade-journal/websocket"
)

// StatsService is the ledger-aggregation boundary the handlers call into
type StatsService interface {
	GetStats(ctx context.Context, accountID, userID string) (*types.AccountStats, error)
	UpdateStats(ctx context.Context, accountID, userID string) error
}

// Server handles HTTP API requests
type Server struct {
	accountRepo   *accounts.Repository
	tradeRepo     *trades.Repository
	playbookRepo  *playbooks.Repository
	webhookRepo   *webhooks.Repository
	analyticsRepo *analytics.Repository
	stats         StatsService
	pipCalc       *forex.Calculator
	webhookMgr    *notifications.WebhookManager
	broker        *realtime.Broker
	hub           *websocket.Hub
	sessions      *auth.Manager
	dispatch      *events.Dispatcher

	corsOrigin    string
	importMaxRows int
	dailyPnLDays  int

	httpServer *http.Server
}

// Config collects the server's collaborators and settings
type Config struct {
	AccountRepo   *accounts.Repository
	TradeRepo     *trades.Repository
	PlaybookRepo  *playbooks.Repository
	WebhookRepo   *webhooks.Repository
	AnalyticsRepo *analytics.Repository
	Stats         StatsService
	PipCalc       *forex.Calculator
	WebhookMgr    *notifications.WebhookManager
	Broker        *realtime.Broker
	Hub           *websocket.Hub
	Sessions      *auth.Manager
	Dispatch      *events.Dispatcher

	CORSOrigin    string
	ImportMaxRows int
	DailyPnLDays  int
}

// NewServer creates a new API server instance
func NewServer(cfg Config) *Server {
	return &Server{
		accountRepo:   cfg.AccountRepo,
		tradeRepo:     cfg.TradeRepo,
		playbookRepo:  cfg.PlaybookRepo,
		webhookRepo:   cfg.WebhookRepo,
		analyticsRepo: cfg.AnalyticsRepo,
		stats:         cfg.Stats,
		pipCalc:       cfg.PipCalc,
		webhookMgr:    cfg.WebhookMgr,
		broker:        cfg.Broker,
		hub:           cfg.Hub,
		sessions:      cfg.Sessions,
		dispatch:      cfg.Dispatch,
		corsOrigin:    cfg.CORSOrigin,
		importMaxRows: cfg.ImportMaxRows,
		dailyPnLDays:  cfg.DailyPnLDays,
	}
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	// Session creation sits outside the auth middleware
	mux.HandleFunc("POST /api/auth/session", s.handleCreateSession)

	// Accounts
	mux.HandleFunc("GET /api/accounts", s.withUser(s.handleListAccounts))
	mux.HandleFunc("POST /api/accounts", s.withUser(s.handleCreateAccount))
	mux.HandleFunc("GET /api/accounts/{id}", s.withUser(s.handleGetAccount))
	mux.HandleFunc("PUT /api/accounts/{id}", s.withUser(s.handleUpdateAccount))
	mux.HandleFunc("DELETE /api/accounts/{id}", s.withUser(s.handleDeleteAccount))
	mux.HandleFunc("POST /api/accounts/{id}/activate", s.withUser(s.handleActivateAccount))
	mux.HandleFunc("POST /api/accounts/{id}/deposit", s.withUser(s.handleDeposit))
	mux.HandleFunc("POST /api/accounts/{id}/withdraw", s.withUser(s.handleWithdraw))
	mux.HandleFunc("GET /api/accounts/{id}/stats", s.withUser(s.handleAccountStats))

	// Trades
	mux.HandleFunc("GET /api/trades", s.withUser(s.handleListTrades))
	mux.HandleFunc("POST /api/trades", s.withUser(s.handleCreateTrade))
	mux.HandleFunc("PUT /api/trades/{id}", s.withUser(s.handleUpdateTrade))
	mux.HandleFunc("DELETE /api/trades/{id}", s.withUser(s.handleDeleteTrade))
	mux.HandleFunc("POST /api/trades/import", s.withUser(s.handleImportTrades))
	mux.HandleFunc("GET /api/trades/export", s.withUser(s.handleExportTrades))

	// Playbooks
	mux.HandleFunc("GET /api/playbooks", s.withUser(s.handleListPlaybooks))
	mux.HandleFunc("POST /api/playbooks", s.withUser(s.handleCreatePlaybook))
	mux.HandleFunc("PUT /api/playbooks/{id}", s.withUser(s.handleUpdatePlaybook))
	mux.HandleFunc("DELETE /api/playbooks/{id}", s.withUser(s.handleDeletePlaybook))

	// Analytics
	mux.HandleFunc("GET /api/analytics/daily-pnl", s.withUser(s.handleDailyPnL))
	mux.HandleFunc("GET /api/analytics/pnl-by-symbol", s.withUser(s.handlePnLBySymbol))
	mux.HandleFunc("GET /api/analytics/monthly", s.withUser(s.handleMonthlySummary))
	mux.HandleFunc("GET /api/analytics/equity-curve", s.withUser(s.handleEquityCurve))
	mux.HandleFunc("GET /api/analytics/summary", s.withUser(s.handleTradeSummary))

	// Forex risk sizing
	mux.HandleFunc("GET /api/forex/pip-value", s.withUser(s.handlePipValue))

	// Outbound webhooks
	mux.HandleFunc("GET /api/webhooks", s.withUser(s.handleListWebhooks))
	mux.HandleFunc("POST /api/webhooks", s.withUser(s.handleCreateWebhook))
	mux.HandleFunc("PUT /api/webhooks/{id}", s.withUser(s.handleUpdateWebhook))
	mux.HandleFunc("DELETE /api/webhooks/{id}", s.withUser(s.handleDeleteWebhook))

	// Realtime feeds
	mux.HandleFunc("GET /api/events", s.withUser(s.handleSSE))
	mux.HandleFunc("GET /ws", s.withUser(s.handleWS))

	mux.HandleFunc("GET /health", s.handleHealth)

	// Add middleware
	handler := s.corsMiddleware(s.loggingMiddleware(mux))

	addr := fmt.Sprintf("0.0.0.0:%d", port)
	s.httpServer = &http.Server{Addr: addr, Handler: handler}

	log.Printf("🚀 API server starting on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Middleware

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// userHandler is a handler that already has the tenant user resolved
type userHandler func(w http.ResponseWriter, r *http.Request, userID string)

// withUser resolves the tenant user for the request: a bearer session token
// when auth is enabled, otherwise the X-User-ID header from the fronting
// gateway. Handlers never see a request without a user.
func (s *Server) withUser(h userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.resolveUser(r)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		h(w, r, userID)
	}
}

func (s *Server) resolveUser(r *http.Request) (string, error) {
	if s.sessions.Enabled() {
		token := bearerToken(r)
		return s.sessions.Validate(r.Context(), token)
	}

	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		// SSE and WebSocket clients cannot always set headers
		userID = r.URL.Query().Get("user_id")
	}
	if userID == "" {
		return "", fmt.Errorf("missing X-User-ID header")
	}
	return userID, nil
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	// SSE and WebSocket clients fall back to a query parameter
	return r.URL.Query().Get("token")
}

package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"tourdesk/internal/cache"
	"tourdesk/internal/catalog"
	"tourdesk/internal/checkout"
	"tourdesk/internal/config"
	"tourdesk/internal/database"
	"tourdesk/internal/handlers"
	"tourdesk/internal/jobs"
	"tourdesk/internal/messaging"
	"tourdesk/internal/metrics"
	"tourdesk/internal/middleware"
	"tourdesk/internal/repository"
	"tourdesk/internal/search"
	"tourdesk/internal/service"
)

// Server представляет HTTP сервер API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	shows    *repository.ShowRepository
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	metrics  *metrics.Metrics
	services *service.Services
	sweeper  *jobs.SessionSweeper
}

// NewServer собирает зависимости. Postgres нужен только для CATALOG_SOURCE=postgres,
// остальные внешние системы опциональны и отключаются при ошибке подключения.
func NewServer(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	s := &Server{config: cfg}

	source, err := s.catalogSource(cfg)
	if err != nil {
		s.Cleanup()
		return nil, err
	}

	var searcher service.Searcher
	if cfg.Elasticsearch.Enabled {
		es, err := search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			slog.Warn("Elasticsearch unavailable, search falls back to catalog scan", "error", err)
		} else {
			searcher = es
		}
	}

	var notifiers checkout.Notifiers
	var gauge service.SessionGauge
	if cfg.MetricsEnabled {
		s.metrics = metrics.New()
		notifiers = append(notifiers, s.metrics)
		gauge = s.metrics
	}
	if cfg.NATS.Enabled {
		nc, err := messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			slog.Warn("NATS unavailable, checkout events are not published", "error", err)
		} else {
			s.nats = nc
			notifiers = append(notifiers, messaging.NewEventNotifier(nc))
		}
	}

	clock := clockwork.NewRealClock()
	s.services = service.NewServices(source, searcher, cfg.Checkout, clock, notifiers, gauge)
	if s.shows != nil {
		s.services.Catalog.WithFinder(s.shows)
	}

	if searcher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := s.services.Catalog.Reindex(ctx); err != nil {
			slog.Warn("Failed to index shows", "error", err)
		}
		cancel()
	}

	s.sweeper = jobs.NewSessionSweeper(s.services.Checkout, cfg.SessionIdleTTL, cfg.SweepInterval, clock)
	h := handlers.NewHandlers(s.services)
	if s.db != nil {
		h.WithStore(s.db)
	}
	s.router = NewRouter(h, s.metrics, cfg.CORSOrigins)
	return s, nil
}

func (s *Server) catalogSource(cfg *config.Config) (catalog.Source, error) {
	var source catalog.Source = catalog.NewStatic()

	if cfg.CatalogSource == config.CatalogSourcePostgres {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = db
		if err := db.RunMigrations(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		s.shows = repository.NewRepositories(db).Shows
		source = s.shows
	}

	if cfg.Valkey.Enabled {
		vc, err := cache.NewValkeyClient(cfg.Valkey)
		if err != nil {
			slog.Warn("Valkey unavailable, catalog is read uncached", "error", err)
		} else {
			s.valkey = vc
			source = cache.NewCachedSource(source, vc)
		}
	}

	slog.Info("Catalog source ready", "source", cfg.CatalogSource, "cached", s.valkey != nil)
	return source, nil
}

// NewRouter настраивает middleware и все роуты; m может быть nil
func NewRouter(h *handlers.Handlers, m *metrics.Metrics, origins []string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(origins))
	if m != nil {
		router.Use(m.Middleware())
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := router.Group("/api")
	{
		cat := api.Group("/catalog")
		{
			cat.GET("", h.ListCatalog)
			cat.GET("/stats", h.CatalogStats)
			cat.GET("/regions", h.ListRegions)
		}

		shows := api.Group("/shows")
		{
			shows.GET("/search", h.SearchShows)
			shows.GET("/:id", h.GetShow)
		}

		checkouts := api.Group("/checkouts")
		{
			checkouts.POST("", h.StartCheckout)
			checkouts.GET("/:id", h.GetCheckout)
			checkouts.DELETE("/:id", h.DiscardCheckout)
			checkouts.PATCH("/:id/tier", h.SelectTier)
			checkouts.PATCH("/:id/quantity", h.ChangeQuantity)
			checkouts.POST("/:id/continue", h.Continue)
			checkouts.POST("/:id/back", h.Back)
			checkouts.POST("/:id/info", h.SetBuyerInfo)
			checkouts.POST("/:id/proceed", h.Proceed)
			checkouts.PATCH("/:id/tx", h.SetTxHash)
			checkouts.POST("/:id/payment", h.PaymentSent)
		}
	}

	router.GET("/health", h.Health)
	return router
}

// Start запускает фоновые задачи
func (s *Server) Start() {
	s.sweeper.Start()
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup останавливает задачи и закрывает соединения
func (s *Server) Cleanup() error {
	if s.sweeper != nil {
		s.sweeper.Stop()
	}
	if s.services != nil {
		s.services.Checkout.Shutdown()
	}
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}
	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			slog.Error("Error closing Valkey connection", "error", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}
	return nil
}

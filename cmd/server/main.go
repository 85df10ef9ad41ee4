package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ntarasov/shop_backend/internal/config"
	"github.com/ntarasov/shop_backend/internal/es"
	"github.com/ntarasov/shop_backend/internal/httpserver"
	"github.com/ntarasov/shop_backend/internal/logging"
	"github.com/ntarasov/shop_backend/internal/middleware/requestlog"
	"github.com/ntarasov/shop_backend/internal/mykafka"
	"github.com/ntarasov/shop_backend/internal/repo"
	"github.com/ntarasov/shop_backend/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LOG_LEVEL)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestlog.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DSN())
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{cfg.KAFKA_ADDRESS})
		defer producer.Close()
	}

	indexer := &es.Indexer{}
	searchHandler := &httpserver.SearchHTTP{}
	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg.ES_URL, cfg.ES_USER, cfg.ES_PASSWORD)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		indexer.Client = esClient
		searchHandler.ES = esClient
	}

	gormRepo := &repo.GormRepo{DB: db}

	deps := &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{
				Repo:          gormRepo,
				JWTSecret:     []byte(cfg.JWT_SECRET),
				RefreshSecret: []byte(cfg.RefreshSecret),
			},
			Producer: producer,
		},
		ProductHandler: &httpserver.ProductHTTP{
			Svc:      &service.ProductService{Repo: gormRepo},
			Producer: producer,
			Indexer:  indexer,
		},
		CartHandler: &httpserver.CartHTTP{
			Svc:      &service.CartService{Repo: gormRepo},
			Producer: producer,
		},
		SearchHandler: searchHandler,
		JWTSecret:     []byte(cfg.JWT_SECRET),
	}

	httpserver.Register(e, deps)

	port := cfg.SERVER_PORT
	if port == "" {
		port = "8080"
	}

	go func() {
		logger.Info("starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}

package main

import (
	"log"
	"net/http"
	"time"

	"roastgram/internal/config"
	apihttp "roastgram/internal/http"
	"roastgram/internal/llm"
	"roastgram/internal/scraper"
	"roastgram/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	scrapeClient := scraper.NewClient(
		cfg.ApifyBaseURL,
		cfg.ApifyToken,
		cfg.ApifyActorID,
		scraper.Options{
			MaxRetries:    cfg.ApifyMaxRetries,
			MinRetryDelay: time.Duration(cfg.ApifyMinRetryDelayMillis) * time.Millisecond,
			Timeout:       time.Duration(cfg.ApifyTimeoutSecs) * time.Second,
		},
		nil,
		logger,
	)
	generator := llm.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, logger)

	roastSvc := service.NewRoastService(
		logger,
		scrapeClient,
		generator,
		time.Duration(cfg.ResultDelayMillis)*time.Millisecond,
	)

	roastHandler := apihttp.NewRoastHandler(logger, roastSvc)
	proxyHandler := apihttp.NewProxyHandler(logger, nil)
	router := apihttp.NewRouter(logger, roastHandler, proxyHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

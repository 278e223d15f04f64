package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"

	"github.com/tgcloud/tgcloud/internal/adapter/handler"
	domainrepo "github.com/tgcloud/tgcloud/internal/domain/repository"
	infrarepo "github.com/tgcloud/tgcloud/internal/infrastructure/repository"
	"github.com/tgcloud/tgcloud/internal/infrastructure/telegram"
	"github.com/tgcloud/tgcloud/internal/usecase"
)

const version = "1.0.0"

func main() {
	config := LoadConfig()

	db, err := sql.Open("sqlite", config.Storage.Database)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	sessionRepo, err := infrarepo.NewSQLiteSessionRepository(db)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	timeout := time.Duration(config.Telegram.TimeoutSeconds) * time.Second
	newChannel := func(botToken string) domainrepo.ChannelAPI {
		return telegram.NewClient(botToken,
			telegram.WithBaseURL(config.Telegram.BaseURL),
			telegram.WithTimeout(timeout))
	}
	sessions := usecase.NewSessionUseCase(sessionRepo, newChannel, infrarepo.NewPinnedIndexStore)

	router := gin.Default()

	api := router.Group("/api")
	api.Use(handler.APIKeyAuth(config.API.Key))
	handler.NewSessionHandler(sessions).RegisterRoutes(api)
	handler.NewCatalogHandler(sessions).RegisterRoutes(api)
	handler.NewShareHandler(sessions).RegisterRoutes(router)

	health := usecase.NewHealthUseCase(infrarepo.NewHealthRepository(db), version)
	handler.NewHealthHandler(health).RegisterRoutes(router)

	log.Printf("Starting server on port %s", config.API.Port)
	if err := router.Run(":" + config.API.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

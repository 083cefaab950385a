package main

import (
	"context"
	"log"
	"os"
	"strings"

	"stockflow/cmd"
	"stockflow/internal/core/container"
	"stockflow/internal/core/logger"
	"stockflow/internal/core/routes"
	"stockflow/internal/database"
	"stockflow/internal/database/migration"
	"stockflow/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	zapLog := logger.NewLogger()
	defer zapLog.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		zapLog.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		zapLog.Fatal("Unable to connect to the database", zap.Error(err))
	}
	defer db.Close()

	zapLog.Info("Connected to the database")

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := migration.Migrate(dbURL, "file://migrations", zapLog); err != nil {
			zapLog.Fatal("Unable to run migrations", zap.Error(err))
		}
	}

	appContainer, err := container.NewAppContainer(db, zapLog)
	if err != nil {
		zapLog.Fatal("Unable to build application container", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware(zapLog))

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":8080"
	}

	zapLog.Info("Starting HTTP server", zap.String("host", host))
	if err := router.Run(host); err != nil {
		zapLog.Fatal("HTTP server terminated", zap.Error(err))
	}
}

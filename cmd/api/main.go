package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/pkg/logger"
)

func main() {
	// .env chỉ dùng khi chạy local; production đọc thẳng environment
	envErr := godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env, os.Getenv("LOG_LEVEL"))

	if envErr != nil {
		log.Debug().Msg("No .env file, reading process environment")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("env", env).Msg("Starting bookstore catalog API")
	Serve()
}

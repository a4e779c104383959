package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Init loads the optional .env file and configures logging. It must run before
// any other package reads the environment.
func Init() {
	if err := godotenv.Load(); err != nil {
		Logger.Debug("No .env file found, using process environment")
	}
	initLogger()
}

func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

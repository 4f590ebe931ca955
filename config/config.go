package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT    string
	DB_TYPE string
	DB_PATH string
	DB_URL  string

	CORS_ORIGIN       string
	TXN_DUPLICATE_KEY string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_TYPE = getEnv("DB_TYPE", "sqlite")
	DB_PATH = getEnv("DB_PATH", "galeria.db")
	DB_URL = getEnv("DB_URL", "")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	// "type" matches duplicate transactions on client+date+type,
	// "value" on client+date+value.
	TXN_DUPLICATE_KEY = getEnv("TXN_DUPLICATE_KEY", "type")

	if DB_TYPE == "postgres" && DB_URL == "" {
		log.Fatal("DB_TYPE=postgres requires DB_URL")
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

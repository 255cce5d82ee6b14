package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StatsCacheTTL time.Duration

	CORSAllowedOrigin string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// No silent fallback: a guessable default key would make every
		// issued session forgeable.
		log.Fatal("JWT_SECRET must be set")
	}

	AppConfig = &Config{
		APIPort:           getEnv("API_PORT", "5000"),
		JWTKey:            []byte(secret),
		JWTExp:            time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 168)) * time.Hour,
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "user"),
		DBPassword:        getEnv("DB_PASSWORD", "password"),
		DBName:            getEnv("DB_NAME", "brain_arcade_db"),
		DBSslMode:         getEnv("DB_SSLMODE", "disable"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		StatsCacheTTL:     time.Duration(getEnvAsInt("STATS_CACHE_TTL_SECONDS", 60)) * time.Second,
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:8081"),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"brain_arcade/internal/platform/config"
	"brain_arcade/internal/platform/database/migrations"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/pressly/goose/v3"
)

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err = DB.Ping(); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	fmt.Println("Successfully connected to PostgreSQL database!")
}

// Migrate applies the embedded schema migrations. Must run after Connect.
func Migrate() {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Error setting migration dialect: %v", err)
	}
	if err := goose.Up(DB, "."); err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}
	fmt.Println("Database migrations applied.")
}

func Close() {
	if DB != nil {
		DB.Close()
		fmt.Println("Database connection closed.")
	}
}

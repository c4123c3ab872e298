package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wavefeed/wavefeed/cmd/api"
	"github.com/wavefeed/wavefeed/cmd/models"
	"github.com/wavefeed/wavefeed/db"
	"gorm.io/gorm"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations()
			return
		case "clear-db":
			runDatabaseClear()
			return
		default:
			log.Fatal().Str("command", os.Args[1]).Msg("Unknown command")
		}
	}

	startServer()
}

func runMigrations() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Fatal().Err(err).Msg("Database initialization error")
	}
	defer closeDatabase(DB)
	log.Info().Msg("Connected to the database for migrations")

	if err := performMigrations(DB); err != nil {
		log.Fatal().Err(err).Msg("Migration error")
	}
	log.Info().Msg("Migrations completed successfully")
}

func performMigrations(DB *gorm.DB) error {
	// Users first so the posts author foreign key has a target.
	migrations := []struct {
		model interface{}
		name  string
	}{
		{&models.User{}, "User"},
		{&models.Post{}, "Post"},
	}

	log.Info().Msg("Starting database migrations")
	for _, m := range migrations {
		if err := DB.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
		log.Info().Str("table", m.name).Msg("Migration successful")
	}
	return nil
}

func startServer() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Fatal().Err(err).Msg("Database initialization error")
	}
	defer closeDatabase(DB)
	log.Info().Msg("Connected to the database")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	server := api.NewApiServer(":"+port, DB)

	go func() {
		if err := server.Run(); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server")
}

func runDatabaseClear() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Fatal().Err(err).Msg("Database initialization error")
	}
	defer closeDatabase(DB)

	var confirmation string
	fmt.Print("Are you sure you want to clear the database? (yes/no): ")
	fmt.Scanln(&confirmation)

	if confirmation != "yes" {
		log.Info().Msg("Database clearing cancelled")
		return
	}

	tables := []interface{}{
		&models.Post{},
		&models.User{},
	}
	for _, table := range tables {
		if err := DB.Migrator().DropTable(table); err != nil {
			log.Warn().Err(err).Msgf("Warning dropping table %T", table)
		} else {
			log.Info().Msgf("Table %T dropped", table)
		}
	}

	log.Info().Msg("Database cleared successfully")
}

func closeDatabase(DB *gorm.DB) {
	sqlDB, _ := DB.DB()
	sqlDB.Close()
	log.Info().Msg("Database connection closed")
}

package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/johanneslumpe/typescriptle/internal/httpserver"
	"github.com/johanneslumpe/typescriptle/internal/store"
	"github.com/johanneslumpe/typescriptle/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	list, err := loadWords(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	a, g := list.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("word lists loaded")

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, list, db)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting typescriptle server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadWords picks the word-list source by configuration:
//  1. WORDS_ANSWERS_FILE (optionally plus WORDS_ALLOWED_FILE) → files.
//  2. WORDS_FROM_DB=1 → the words table of the sqlite database.
//  3. Otherwise → small embedded defaults.
func loadWords(db *sql.DB) (*words.List, error) {
	if p := os.Getenv("WORDS_ANSWERS_FILE"); p != "" {
		return words.FromFiles(p, os.Getenv("WORDS_ALLOWED_FILE"), words.DefaultLength)
	}
	if os.Getenv("WORDS_FROM_DB") == "1" {
		return words.FromDB(context.Background(), db, words.DefaultLength)
	}
	return words.Embedded()
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

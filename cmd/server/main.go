// Package main is the entry point for the contact manager API server.
//
// Its job is deliberately small: load configuration from the environment,
// build the logger, and hand both to internal/server. All real logic lives
// in the internal packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakif/contact-manager/internal/server"
)

// defaultTokenTTL keeps sessions alive for 30 days unless TOKEN_TTL says
// otherwise.
const defaultTokenTTL = 720 * time.Hour

func main() {
	// A .env file is a development convenience; in production the variables
	// come from the real environment and the file simply doesn't exist.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
		port = p
	}

	dbPath := "data/contacts.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// TOKEN_TTL takes Go duration syntax, e.g. "24h" or "720h".
	tokenTTL := defaultTokenTTL
	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil || ttl <= 0 {
			logger.Error("invalid TOKEN_TTL value", slog.String("value", ttlStr))
			os.Exit(1)
		}
		tokenTTL = ttl
	}

	// BCRYPT_COST is optional; zero lets the auth package pick its default.
	bcryptCost := 0
	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		c, err := strconv.Atoi(costStr)
		if err != nil {
			logger.Error("invalid BCRYPT_COST value", slog.String("value", costStr))
			os.Exit(1)
		}
		bcryptCost = c
	}

	cfg := server.Config{
		Port:       port,
		DBPath:     dbPath,
		TokenTTL:   tokenTTL,
		BcryptCost: bcryptCost,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

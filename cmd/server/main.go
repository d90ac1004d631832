// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RaX911/API-Key-Project/internal/config"
	"github.com/RaX911/API-Key-Project/internal/database"
	"github.com/RaX911/API-Key-Project/internal/handlers"
	"github.com/RaX911/API-Key-Project/internal/routes"
	"github.com/RaX911/API-Key-Project/internal/services"
	"github.com/RaX911/API-Key-Project/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/pflag"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	// Command-line flags override the environment
	pflag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	pflag.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver (sqlite or postgres)")
	pflag.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database file")
	pflag.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection URL")
	pflag.BoolVar(&cfg.SeedDatabase, "seed", cfg.SeedDatabase, "seed an empty database with reference data")
	pflag.Parse()

	log.Printf("[Config] driver=%s port=%s jwt=%s google=%v",
		cfg.DBDriver, cfg.Port, config.MaskSecret(cfg.JwtSecret), cfg.GoogleConfigured())

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("[Database] %v", err)
	}
	store := storage.NewGormStore(db)

	if cfg.SeedDatabase {
		if err := database.Seed(context.Background(), store); err != nil {
			log.Fatalf("[Seed] %v", err)
		}
	}

	audit := services.NewAuditService(store)
	h := handlers.New(store, audit, cfg)

	app := fiber.New(fiber.Config{AppName: "BTS & MSISDN Admin"})
	routes.SetupRoutes(app, cfg, h)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	audit.Wait()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

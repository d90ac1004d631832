// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package routes

import (
	"strings"

	"github.com/RaX911/API-Key-Project/internal/config"
	"github.com/RaX911/API-Key-Project/internal/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func SetupRoutes(app *fiber.App, cfg *config.Config, h *handlers.Handler) {
	app.Use(recover.New())
	app.Use(requestid.New())

	allowOrigins := strings.TrimSpace(cfg.CorsAllowOrigins)
	if allowOrigins == "" {
		allowOrigins = "http://localhost:5000,http://127.0.0.1:5000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-API-Key",
		AllowCredentials: allowOrigins != "*",
	}))
	app.Use(logger.New())

	app.Get("/healthz", h.Health)

	api := app.Group("/api")

	// Auth routes (public)
	api.Post("/auth/login", h.Login)
	api.Post("/auth/logout", h.Logout)
	api.Get("/auth/google/config", h.GoogleConfig)
	api.Get("/auth/google/login", h.GoogleLogin)
	api.Get("/auth/google/callback", h.GoogleCallback)

	// Auth routes (protected)
	api.Get("/auth/me", h.RequireSession, h.Me)
	api.Put("/auth/change-password", h.RequireSession, h.ChangePassword)

	// MSISDN lookup also accepts API keys; register before the session-only group
	api.Get("/msisdn/lookup", h.SessionOrAPIKey, h.LookupMSISDN)

	msisdn := api.Group("/msisdn", h.RequireSession)
	msisdn.Get("/", h.ListMSISDNs)
	msisdn.Post("/", h.CreateMSISDN)
	msisdn.Get("/:msisdn/history", h.GetMSISDNHistory)

	keys := api.Group("/keys", h.RequireSession)
	keys.Get("/", h.ListKeys)
	keys.Post("/", h.CreateKey)
	keys.Patch("/:id/revoke", h.RevokeKey)

	bts := api.Group("/bts", h.RequireSession)
	bts.Get("/", h.ListTowers)
	bts.Post("/", h.CreateTower)
	bts.Get("/:id", h.GetTower)
	bts.Put("/:id", h.UpdateTower)
	bts.Delete("/:id", h.DeleteTower)

	regions := api.Group("/regions", h.RequireSession)
	regions.Get("/islands", h.ListIslands)
	regions.Post("/islands", h.CreateIsland)
	regions.Get("/provinces", h.ListProvinces)
	regions.Post("/provinces", h.CreateProvince)
	regions.Post("/regencies", h.CreateRegency)
	regions.Post("/districts", h.CreateDistrict)
	regions.Get("/villages", h.ListVillages)
	regions.Post("/villages", h.CreateVillage)

	api.Get("/stats/dashboard", h.RequireSession, h.GetStats)
	api.Get("/audit", h.RequireSession, h.GetAuditLogs)
	api.Get("/audit/entity/:type/:id", h.RequireSession, h.GetEntityHistory)
}

// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package handlers

import (
	"errors"
	"log"
	"math"
	"strconv"

	"github.com/RaX911/API-Key-Project/internal/config"
	"github.com/RaX911/API-Key-Project/internal/services"
	"github.com/RaX911/API-Key-Project/internal/storage"
	"github.com/RaX911/API-Key-Project/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
)

// Handler serves the REST API over an injected store.
type Handler struct {
	store  storage.Store
	audit  *services.AuditService
	cfg    *config.Config
	google *oauth2.Config
}

func New(store storage.Store, audit *services.AuditService, cfg *config.Config) *Handler {
	return &Handler{
		store:  store,
		audit:  audit,
		cfg:    cfg,
		google: newGoogleOAuthConfig(cfg),
	}
}

// ═══════════════════════════════════════════════════════════
// ERRORS
// ═══════════════════════════════════════════════════════════

const msgInternal = "Internal Server Error"

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": message})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": message})
}

func fieldError(c *fiber.Ctx, field, message string) error {
	if field == "" {
		return badRequest(c, message)
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message, "field": field})
}

// respondError maps a storage or validation error to a response. notFoundMsg
// is used for storage.ErrNotFound.
func respondError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var ve *validation.Error
	if errors.As(err, &ve) {
		return fieldError(c, ve.Field, ve.Message)
	}
	var se *storage.ValidationError
	if errors.As(err, &se) {
		return fieldError(c, se.Field, se.Message)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, notFoundMsg)
	}

	log.Printf("[API] %s %s failed (request %s): %v",
		c.Method(), c.Path(), c.GetRespHeader(fiber.HeaderXRequestID), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": msgInternal})
}

// parseBody decodes and validates the request body into req.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errInvalidBody
	}
	return validation.Struct(req)
}

var errInvalidBody = &validation.Error{Message: "Invalid request body"}

// parseID reads a positive numeric :id route parameter.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// optionalID reads a positive numeric query parameter; nil when absent or malformed.
func optionalID(c *fiber.Ctx, key string) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}

// ═══════════════════════════════════════════════════════════
// PAGINATION
// ═══════════════════════════════════════════════════════════

const maxPageLimit = 100

type pagination struct {
	Page  int
	Limit int
}

// paginate reads page and limit. Missing, malformed or non-positive values
// fall back to the defaults; limit is capped at maxPageLimit.
func paginate(c *fiber.Ctx, defaultLimit int) pagination {
	p := pagination{Page: 1, Limit: defaultLimit}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		p.Limit = limit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

func (p pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p pagination) TotalPages(total int64) int64 {
	return int64(math.Ceil(float64(total) / float64(p.Limit)))
}

func pageResponse[T any](page storage.Page[T], p pagination) fiber.Map {
	return fiber.Map{
		"items":      page.Items,
		"total":      page.Total,
		"page":       p.Page,
		"limit":      p.Limit,
		"totalPages": p.TotalPages(page.Total),
	}
}

// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package handlers

import (
	"github.com/RaX911/API-Key-Project/internal/models"
	"github.com/RaX911/API-Key-Project/internal/storage"

	"github.com/gofiber/fiber/v2"
)

const historyLimit = 100

// GetEntityHistory - GET /api/audit/entity/:type/:id, newest first
func (h *Handler) GetEntityHistory(c *fiber.Ctx) error {
	return h.history(c, models.EntityType(c.Params("type")), c.Params("id"))
}

// GetMSISDNHistory - GET /api/msisdn/:msisdn/history
func (h *Handler) GetMSISDNHistory(c *fiber.Ctx) error {
	return h.history(c, models.EntityMSISDN, c.Params("msisdn"))
}

func (h *Handler) history(c *fiber.Ctx, entityType models.EntityType, entityID string) error {
	if entityType == "" || entityID == "" {
		return badRequest(c, "Entity type and ID are required")
	}

	page, err := h.store.ListAuditLogs(c.UserContext(), storage.AuditFilter{
		EntityType: string(entityType),
		EntityID:   entityID,
		Limit:      historyLimit,
	})
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(fiber.Map{
		"entityType": entityType,
		"entityId":   entityID,
		"history":    page.Items,
		"count":      len(page.Items),
	})
}

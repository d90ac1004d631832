// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package handlers

import (
	"github.com/RaX911/API-Key-Project/internal/storage"

	"github.com/gofiber/fiber/v2"
)

const defaultAuditLimit = 50

// AuditQuery - query parameters of the audit listing
type AuditQuery struct {
	EntityType string `query:"entityType"`
	EntityID   string `query:"entityId"`
	Action     string `query:"action"`
}

// GetAuditLogs - GET /api/audit?page&limit&entityType&entityId&action
func (h *Handler) GetAuditLogs(c *fiber.Ctx) error {
	var q AuditQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	p := paginate(c, defaultAuditLimit)

	page, err := h.store.ListAuditLogs(c.UserContext(), storage.AuditFilter{
		EntityType: q.EntityType,
		EntityID:   q.EntityID,
		Action:     q.Action,
		Limit:      p.Limit,
		Offset:     p.Offset(),
	})
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(pageResponse(page, p))
}

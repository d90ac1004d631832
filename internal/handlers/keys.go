package handlers

import (
	"github.com/RaX911/API-Key-Project/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListKeys - GET /api/keys
func (h *Handler) ListKeys(c *fiber.Ctx) error {
	keys, err := h.store.ListAPIKeys(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(keys)
}

// CreateKey - POST /api/keys
func (h *Handler) CreateKey(c *fiber.Ctx) error {
	var req validation.CreateAPIKeyRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "")
	}

	key := req.Model()
	if err := h.store.CreateAPIKey(c.UserContext(), key); err != nil {
		return respondError(c, err, "")
	}

	h.audit.LogKeyCreate(c, key)
	return c.Status(fiber.StatusCreated).JSON(key)
}

// RevokeKey - PATCH /api/keys/:id/revoke
func (h *Handler) RevokeKey(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid API key id")
	}

	key, changed, err := h.store.RevokeAPIKey(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "API key not found")
	}

	if changed {
		h.audit.LogKeyRevoke(c, key)
	}
	return c.JSON(key)
}

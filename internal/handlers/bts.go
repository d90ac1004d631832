package handlers

import (
	"errors"

	"github.com/RaX911/API-Key-Project/internal/storage"
	"github.com/RaX911/API-Key-Project/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultTowerLimit = 10
	msgTowerNotFound  = "BTS tower not found"
)

// ListTowers - GET /api/bts?page&limit&search&operator
func (h *Handler) ListTowers(c *fiber.Ctx) error {
	p := paginate(c, defaultTowerLimit)

	page, err := h.store.ListTowers(c.UserContext(), storage.TowerFilter{
		Search:   c.Query("search"),
		Operator: c.Query("operator"),
		Limit:    p.Limit,
		Offset:   p.Offset(),
	})
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(pageResponse(page, p))
}

// GetTower - GET /api/bts/:id
func (h *Handler) GetTower(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid BTS tower id")
	}

	tower, err := h.store.GetTower(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, msgTowerNotFound)
	}
	return c.JSON(tower)
}

// CreateTower - POST /api/bts
func (h *Handler) CreateTower(c *fiber.Ctx) error {
	var req validation.CreateTowerRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "")
	}

	tower := req.Model()
	if err := h.store.CreateTower(c.UserContext(), tower); err != nil {
		return respondError(c, err, "")
	}

	h.audit.LogTowerCreate(c, tower)
	return c.Status(fiber.StatusCreated).JSON(tower)
}

// UpdateTower - PUT /api/bts/:id, partial update
func (h *Handler) UpdateTower(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid BTS tower id")
	}

	var req validation.UpdateTowerRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "")
	}

	before, err := h.store.GetTower(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, msgTowerNotFound)
	}

	tower, err := h.store.UpdateTower(c.UserContext(), id, req.Patch())
	if err != nil {
		return respondError(c, err, msgTowerNotFound)
	}

	h.audit.LogTowerUpdate(c, before, tower)
	return c.JSON(tower)
}

// DeleteTower - DELETE /api/bts/:id. Deleting an absent tower is a no-op.
func (h *Handler) DeleteTower(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid BTS tower id")
	}

	_, err := h.store.GetTower(c.UserContext(), id)
	existed := err == nil
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return respondError(c, err, "")
	}

	if err := h.store.DeleteTower(c.UserContext(), id); err != nil {
		return respondError(c, err, "")
	}

	if existed {
		h.audit.LogTowerDelete(c, id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

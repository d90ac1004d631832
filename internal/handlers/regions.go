package handlers

import (
	"github.com/RaX911/API-Key-Project/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ═══════════════════════════════════════════════════════════
// REGIONS: island → province → regency → district → village
// ═══════════════════════════════════════════════════════════

func (h *Handler) ListIslands(c *fiber.Ctx) error {
	islands, err := h.store.ListIslands(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(islands)
}

func (h *Handler) CreateIsland(c *fiber.Ctx) error {
	var req validation.CreateIslandRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "")
	}
	island := req.Model()
	if err := h.store.CreateIsland(c.UserContext(), island); err != nil {
		return respondError(c, err, "")
	}
	h.audit.LogRegionCreate(c, "island", island.ID, island.Name)
	return c.Status(fiber.StatusCreated).JSON(island)
}

// ListProvinces - GET /api/regions/provinces?islandId
func (h *Handler) ListProvinces(c *fiber.Ctx) error {
	provinces, err := h.store.ListProvinces(c.UserContext(), optionalID(c, "islandId"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(provinces)
}

func (h *Handler) CreateProvince(c *fiber.Ctx) error {
	var req validation.CreateProvinceRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "")
	}
	province := req.Model()
	if err := h.store.CreateProvince(c.UserContext(), province); err != nil {
		return respondError(c, err, "")
	}
	h.audit.LogRegionCreate(c, "province", province.ID, province.Name)
	return c.Status(fiber.StatusCreated).JSON(province)
}

func (h *Handler) CreateRegency(c *fiber.Ctx) error {
	var req validation.CreateRegencyRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "")
	}
	regency := req.Model()
	if err := h.store.CreateRegency(c.UserContext(), regency); err != nil {
		return respondError(c, err, "")
	}
	h.audit.LogRegionCreate(c, "regency", regency.ID, regency.Name)
	return c.Status(fiber.StatusCreated).JSON(regency)
}

func (h *Handler) CreateDistrict(c *fiber.Ctx) error {
	var req validation.CreateDistrictRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "")
	}
	district := req.Model()
	if err := h.store.CreateDistrict(c.UserContext(), district); err != nil {
		return respondError(c, err, "")
	}
	h.audit.LogRegionCreate(c, "district", district.ID, district.Name)
	return c.Status(fiber.StatusCreated).JSON(district)
}

// ListVillages - GET /api/regions/villages?districtId
func (h *Handler) ListVillages(c *fiber.Ctx) error {
	villages, err := h.store.ListVillages(c.UserContext(), optionalID(c, "districtId"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(villages)
}

func (h *Handler) CreateVillage(c *fiber.Ctx) error {
	var req validation.CreateVillageRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "")
	}
	village := req.Model()
	if err := h.store.CreateVillage(c.UserContext(), village); err != nil {
		return respondError(c, err, "")
	}
	h.audit.LogRegionCreate(c, "village", village.ID, village.Name)
	return c.Status(fiber.StatusCreated).JSON(village)
}

package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetStats - GET /api/stats/dashboard. Computed on every call, never cached.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	stats, err := h.store.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}

	log.Printf("[Stats] towers=%d msisdn=%d activeKeys=%d provinces=%d",
		stats.TotalBts, stats.TotalMsisdn, stats.ActiveKeys, stats.RegionsCovered)
	return c.JSON(stats)
}

// Health - GET /healthz
func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.store.Ping(c.UserContext()); err != nil {
		log.Printf("[Health] Database ping failed: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

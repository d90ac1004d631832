package handlers

import (
	"errors"
	"strings"

	"github.com/RaX911/API-Key-Project/internal/storage"
	"github.com/RaX911/API-Key-Project/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const msgMSISDNNotFound = "MSISDN not found"

// LookupMSISDN - GET /api/msisdn/lookup?msisdn=
// Reachable with a session or an API key.
func (h *Handler) LookupMSISDN(c *fiber.Ctx) error {
	msisdn := utils.CopyString(strings.TrimSpace(c.Query("msisdn")))
	if msisdn == "" {
		return fieldError(c, "msisdn", "msisdn query parameter is required")
	}

	result, err := h.store.LookupMSISDNDetails(c.UserContext(), msisdn)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.audit.LogLookup(c, msisdn, err)
		}
		return respondError(c, err, msgMSISDNNotFound)
	}

	h.audit.LogLookup(c, msisdn, nil)
	return c.JSON(result)
}

// ListMSISDNs - GET /api/msisdn?page&limit&search
func (h *Handler) ListMSISDNs(c *fiber.Ctx) error {
	p := paginate(c, storage.DefaultMSISDNLimit)

	page, err := h.store.ListMSISDNs(c.UserContext(), storage.MSISDNFilter{
		Search: c.Query("search"),
		Limit:  p.Limit,
		Offset: p.Offset(),
	})
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(pageResponse(page, p))
}

// CreateMSISDN - POST /api/msisdn
func (h *Handler) CreateMSISDN(c *fiber.Ctx) error {
	var req validation.CreateMSISDNRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "")
	}

	record := req.Model()
	if err := h.store.CreateMSISDN(c.UserContext(), record); err != nil {
		return respondError(c, err, "")
	}

	h.audit.LogMSISDNCreate(c, record)
	return c.Status(fiber.StatusCreated).JSON(record)
}

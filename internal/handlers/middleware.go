package handlers

import (
	"errors"
	"log"

	"github.com/RaX911/API-Key-Project/internal/services"
	"github.com/RaX911/API-Key-Project/internal/storage"

	"github.com/gofiber/fiber/v2"
)

const (
	msgUnauthorized      = "Unauthorized"
	msgUnauthorizedOrKey = "Unauthorized: Login or Valid API Key required"

	apiKeyHeader = "x-api-key"
)

// authenticate puts the session holder into locals. It reports false when
// the request carries no valid session, or when the operator behind it was
// removed or disabled after the token was issued.
func (h *Handler) authenticate(c *fiber.Ctx) (bool, error) {
	token := sessionToken(c)
	if token == "" {
		return false, nil
	}
	session, err := h.parseSession(token)
	if err != nil {
		return false, nil
	}

	op, err := h.store.GetOperator(c.UserContext(), session.OperatorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !op.IsActive {
		log.Printf("[Auth] Rejected session %s of disabled operator %s", session.SessionID, op.Username)
		return false, nil
	}

	c.Locals(services.LocalOperatorID, op.ID)
	c.Locals(services.LocalUsername, op.Username)
	c.Locals(services.LocalSessionID, session.SessionID)
	return true, nil
}

// RequireSession rejects requests without a valid session.
func (h *Handler) RequireSession(c *fiber.Ctx) error {
	ok, err := h.authenticate(c)
	if err != nil {
		return respondError(c, err, "")
	}
	if !ok {
		return unauthorized(c, msgUnauthorized)
	}
	return c.Next()
}

// SessionOrAPIKey accepts a session or an x-api-key header naming an active
// key. Key callers are metered before the request proceeds; a metering
// failure is logged and does not fail the request.
func (h *Handler) SessionOrAPIKey(c *fiber.Ctx) error {
	ok, err := h.authenticate(c)
	if err != nil {
		return respondError(c, err, "")
	}
	if ok {
		return c.Next()
	}

	token := c.Get(apiKeyHeader)
	if token == "" {
		return unauthorized(c, msgUnauthorizedOrKey)
	}

	key, err := h.store.GetAPIKeyByToken(c.UserContext(), token)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return respondError(c, err, "")
		}
		return unauthorized(c, msgUnauthorizedOrKey)
	}
	if !key.IsActive() {
		return unauthorized(c, msgUnauthorizedOrKey)
	}

	if err := h.store.IncrementAPIKeyUsage(c.UserContext(), key.ID); err != nil {
		log.Printf("[APIKey] Failed to record usage for key %d: %v", key.ID, err)
	}

	c.Locals(services.LocalAPIKeyID, key.ID)
	c.Locals(services.LocalUsername, key.Owner)
	return c.Next()
}

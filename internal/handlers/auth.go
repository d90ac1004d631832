// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/RaX911/API-Key-Project/internal/services"
	"github.com/RaX911/API-Key-Project/internal/storage"
	"github.com/RaX911/API-Key-Project/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const msgInvalidCredentials = "Invalid credentials"

// Login - POST /api/auth/login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req validation.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "")
	}
	username := strings.TrimSpace(req.Username)

	op, err := h.store.GetOperatorByUsername(c.UserContext(), username)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return respondError(c, err, "")
		}
		h.audit.LogLogin(c, nil, username, "unknown username")
		return unauthorized(c, msgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		h.audit.LogLogin(c, &op.ID, username, "wrong password")
		return unauthorized(c, msgInvalidCredentials)
	}
	if !op.IsActive {
		h.audit.LogLogin(c, &op.ID, username, "account disabled")
		return unauthorized(c, "Account is disabled")
	}

	token, err := h.issueSession(op.ID, op.Username)
	if err != nil {
		return respondError(c, err, "")
	}
	h.setSessionCookie(c, token)

	if err := h.store.TouchOperator(c.UserContext(), op.ID); err != nil {
		log.Printf("[Auth] Failed to update last seen for %s: %v", op.Username, err)
	}
	h.audit.LogLogin(c, &op.ID, op.Username, "")

	return c.JSON(fiber.Map{"token": token, "username": op.Username})
}

// Logout - POST /api/auth/logout
func (h *Handler) Logout(c *fiber.Ctx) error {
	if ok, _ := h.authenticate(c); ok {
		h.audit.LogLogout(c)
	}
	h.clearSessionCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// Me - GET /api/auth/me
func (h *Handler) Me(c *fiber.Ctx) error {
	id, _ := c.Locals(services.LocalOperatorID).(uint)
	op, err := h.store.GetOperator(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Session outlived its operator.
			return unauthorized(c, msgUnauthorized)
		}
		return respondError(c, err, "")
	}
	return c.JSON(op)
}

// ChangePassword - PUT /api/auth/change-password
func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	var req validation.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "")
	}

	id, _ := c.Locals(services.LocalOperatorID).(uint)
	op, err := h.store.GetOperator(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return unauthorized(c, msgUnauthorized)
		}
		return respondError(c, err, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.OldPassword)); err != nil {
		return fieldError(c, "oldPassword", "Invalid old password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, err, "")
	}
	if err := h.store.SetOperatorPassword(c.UserContext(), op.ID, string(hash)); err != nil {
		return respondError(c, err, "")
	}

	h.audit.LogPasswordChange(c, op.ID)
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/RaX911/API-Key-Project/internal/config"
	"github.com/RaX911/API-Key-Project/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie   = "oauth_state"
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
	googleExchangeTime = 15 * time.Second
)

// newGoogleOAuthConfig returns nil unless Google sign-in is enabled and configured.
func newGoogleOAuthConfig(cfg *config.Config) *oauth2.Config {
	if cfg == nil || !cfg.GoogleConfigured() {
		return nil
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

func googleUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"message": "Google OAuth is not configured",
	})
}

// GoogleConfig - GET /api/auth/google/config, tells the login page whether
// to offer Google sign-in
func (h *Handler) GoogleConfig(c *fiber.Ctx) error {
	resp := fiber.Map{"enabled": h.google != nil}
	if h.google != nil {
		resp["clientId"] = h.google.ClientID
	}
	return c.JSON(resp)
}

// GoogleLogin - GET /api/auth/google/login, starts the code flow
func (h *Handler) GoogleLogin(c *fiber.Ctx) error {
	if h.google == nil {
		return googleUnavailable(c)
	}

	// State token for CSRF protection
	state := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   h.cfg.SessionSecure,
		SameSite: "Lax",
	})

	return c.Redirect(h.google.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account")))
}

// GoogleCallback - GET /api/auth/google/callback
func (h *Handler) GoogleCallback(c *fiber.Ctx) error {
	if h.google == nil {
		return googleUnavailable(c)
	}

	state := c.Query("state")
	savedState := c.Cookies(oauthStateCookie)
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.SessionSecure,
		SameSite: "Lax",
	})
	if state == "" || savedState == "" || state != savedState {
		log.Println("[OAuth] Error: Invalid OAuth state")
		return c.Redirect("/?error=" + url.QueryEscape("Invalid OAuth state"))
	}

	code := c.Query("code")
	if code == "" {
		return badRequest(c, "Missing authorization code")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), googleExchangeTime)
	defer cancel()

	token, err := h.google.Exchange(ctx, code)
	if err != nil {
		log.Printf("[OAuth] Token exchange failed: %v", err)
		return c.Redirect("/?error=" + url.QueryEscape("Google sign-in failed"))
	}

	info, err := h.fetchGoogleUser(ctx, token)
	if err != nil {
		log.Printf("[OAuth] Failed to get user info: %v", err)
		return c.Redirect("/?error=" + url.QueryEscape("Google sign-in failed"))
	}
	if info.Email == "" || !info.VerifiedEmail {
		return c.Redirect("/?error=" + url.QueryEscape("Google account email is not verified"))
	}

	// Google operators get a random password they never see.
	randomPass, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, err, "")
	}
	op, err := h.store.UpsertGoogleOperator(c.UserContext(), *info, string(randomPass))
	if err != nil {
		return respondError(c, err, "")
	}
	if !op.IsActive {
		h.audit.LogLogin(c, &op.ID, op.Username, "account disabled")
		return c.Redirect("/?error=" + url.QueryEscape("Account is disabled"))
	}

	session, err := h.issueSession(op.ID, op.Username)
	if err != nil {
		return respondError(c, err, "")
	}
	h.setSessionCookie(c, session)

	if err := h.store.TouchOperator(c.UserContext(), op.ID); err != nil {
		log.Printf("[OAuth] Failed to update last seen for %s: %v", op.Username, err)
	}
	h.audit.LogLogin(c, &op.ID, op.Username, "")

	return c.Redirect("/")
}

func (h *Handler) fetchGoogleUser(ctx context.Context, token *oauth2.Token) (*models.GoogleUserInfo, error) {
	client := h.google.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		return nil, fmt.Errorf("userinfo returned %d", resp.StatusCode)
	}

	var info models.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

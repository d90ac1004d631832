package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookie = "session"
	sessionTTL    = 24 * time.Hour
)

var errInvalidSession = errors.New("invalid or expired session")

// Session is the caller identity carried in the session token.
type Session struct {
	OperatorID uint
	Username   string
	SessionID  string
}

func (h *Handler) issueSession(operatorID uint, username string) (string, error) {
	claims := jwt.MapClaims{
		"operator_id": operatorID,
		"username":    username,
		"session_id":  uuid.New().String(),
		"exp":         time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JwtSecret))
}

func (h *Handler) parseSession(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.cfg.JwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidSession
	}
	id, ok := claims["operator_id"].(float64)
	if !ok || id <= 0 {
		return nil, errInvalidSession
	}
	username, _ := claims["username"].(string)
	sessionID, _ := claims["session_id"].(string)

	return &Session{OperatorID: uint(id), Username: username, SessionID: sessionID}, nil
}

// sessionToken takes the token from the session cookie, then from an
// Authorization: Bearer header.
func sessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(sessionCookie); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if token := strings.TrimPrefix(header, "Bearer "); token != header {
		return strings.TrimSpace(token)
	}
	return ""
}

func (h *Handler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		Secure:   h.cfg.SessionSecure,
		SameSite: "Lax",
	})
}

func (h *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.SessionSecure,
		SameSite: "Lax",
	})
}

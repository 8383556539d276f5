package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionConfig for the Redis-backed session cookie.
type SessionConfig struct {
	Secret            string
	RedisURL          string
	AllowCrossSiteDev bool
	IsProduction      bool
}

const (
	SessionCookieName  = "wastex.sid"
	SessionRedisPrefix = "session:"
	sessionMaxAge      = 24 * time.Hour
)

// SessionUser is the shape stored in the session under "user".
type SessionUser struct {
	UserID     uint   `json:"user_id"`
	FirstName  string `json:"first_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

// Session returns a Fiber middleware that loads/saves the session from Redis.
func Session(cfg SessionConfig) (fiber.Handler, *redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	rdb := redis.NewClient(opt)
	return SessionWithClient(rdb), rdb, nil
}

// SessionWithClient is Session with an injected Redis client (tests use miniredis).
func SessionWithClient(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(SessionCookieName)
		if strings.HasPrefix(sessionID, "s:") {
			parts := strings.SplitN(sessionID[2:], ".", 2)
			sessionID = parts[0]
		}

		var data map[string]interface{}
		if sessionID != "" {
			b, err := rdb.Get(context.Background(), SessionRedisPrefix+sessionID).Bytes()
			if err == nil {
				_ = json.Unmarshal(b, &data)
			}
		}
		if data == nil {
			data = make(map[string]interface{})
		}

		c.Locals("session_data", data)
		if u, ok := data["user"]; ok {
			c.Locals("user", u)
		} else {
			c.Locals("user", nil)
		}
		c.Locals("session_id", sessionID)

		if err := c.Next(); err != nil {
			return err
		}

		// Persist if we still have a session id (e.g. after login).
		if sid, _ := c.Locals("session_id").(string); sid != "" {
			updated, _ := c.Locals("session_data").(map[string]interface{})
			if updated != nil {
				b, _ := json.Marshal(updated)
				rdb.Set(context.Background(), SessionRedisPrefix+sid, b, sessionMaxAge)
			}
		}
		return nil
	}
}

// GetSessionID returns the current session ID from context.
func GetSessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals("session_id").(string)
	return sid
}

// SetSessionUser sets the user in the session and marks it for save.
func SetSessionUser(c *fiber.Ctx, user SessionUser) {
	data, _ := c.Locals("session_data").(map[string]interface{})
	if data == nil {
		data = make(map[string]interface{})
	}
	data["user"] = map[string]interface{}{
		"user_id":     float64(user.UserID),
		"first_name":  user.FirstName,
		"email":       user.Email,
		"role":        user.Role,
		"is_verified": user.IsVerified,
	}
	c.Locals("session_data", data)
	c.Locals("user", data["user"])
}

// GetSessionUser returns the typed session user, or nil when not logged in.
func GetSessionUser(c *fiber.Ctx) *SessionUser {
	m, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return nil
	}
	id, ok := m["user_id"].(float64)
	if !ok || id <= 0 {
		return nil
	}
	out := &SessionUser{UserID: uint(id)}
	if s, ok := m["first_name"].(string); ok {
		out.FirstName = s
	}
	if s, ok := m["email"].(string); ok {
		out.Email = s
	}
	if s, ok := m["role"].(string); ok {
		out.Role = s
	}
	if v, ok := m["is_verified"].(bool); ok {
		out.IsVerified = v
	}
	return out
}

// RegenerateSessionID creates a new session ID and sets it in Locals.
// Cookie value should be "s:"+returned ID.
func RegenerateSessionID(c *fiber.Ctx) string {
	newID := uuid.New().String()
	c.Locals("session_id", newID)
	return newID
}

// DestroySession clears user and session data from Locals; the caller clears
// the cookie and the Redis key.
func DestroySession(c *fiber.Ctx) {
	c.Locals("session_data", make(map[string]interface{}))
	c.Locals("user", nil)
}

// SessionCookieConfig returns cookie options for SetCookie/ClearCookie.
func SessionCookieConfig(cfg SessionConfig) fiber.Cookie {
	sameSite := "Lax"
	if cfg.AllowCrossSiteDev {
		sameSite = "None"
	}
	secure := cfg.IsProduction && cfg.AllowCrossSiteDev
	return fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}

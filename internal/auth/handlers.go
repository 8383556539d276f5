package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"wastex-backend/internal/middleware"
	"wastex-backend/internal/pkg/response"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service *Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

// RegisterRequest body (camelCase, client contract).
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IDNumber  string `json:"idNumber"`
}

// Register POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.Register(c.Context(), RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IDNumber:  req.IDNumber,
	})
	if err != nil {
		switch err {
		case ErrAdminRegistration:
			return response.Forbidden(c, err.Error())
		case ErrEmailTaken:
			return response.Conflict(c, err.Error())
		case ErrInvalidRole, ErrInvalidEmail, ErrWeakPassword, ErrInvalidName:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	return response.SuccessCreated(c, "Account created", fiber.Map{
		"id":          user.ID,
		"email":       user.Email,
		"role":        user.Role,
		"firstName":   user.FirstName,
		"is_verified": user.IsVerified,
	}, nil)
}

// LoginRequest body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/auth/login. Authenticates, creates the session, sets the cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case ErrEmailPasswordRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrInvalidCredentials:
			return response.Unauthorized(c, err.Error())
		case ErrAccountBlocked:
			return response.Forbidden(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:     user.ID,
		FirstName:  user.FirstName,
		Email:      user.Email,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	})

	if h.Rdb != nil {
		key := userSessionsPrefix + user.Email
		if err := h.Rdb.SAdd(context.Background(), key, sessionID).Err(); err != nil {
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return response.Success(c, "Login successful", fiber.Map{
		"id":          user.ID,
		"email":       user.Email,
		"role":        user.Role,
		"firstName":   user.FirstName,
		"is_verified": user.IsVerified,
	}, nil)
}

// Me GET /api/auth/me. Returns the current session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	u := middleware.GetSessionUser(c)
	if u == nil {
		return response.Unauthorized(c, ErrNotAuthenticated.Error())
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": u}, nil)
}

// Logout DELETE /api/auth/logout. Destroys the session and clears the cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	if sessionID != "" && h.Rdb != nil {
		h.Rdb.Del(context.Background(), middleware.SessionRedisPrefix+sessionID)
	}
	middleware.DestroySession(c)
	c.Locals("session_id", "")

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out", fiber.Map{}, nil)
}

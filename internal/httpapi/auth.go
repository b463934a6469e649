package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/bookstore/internal/auth"
	"horse.fit/bookstore/internal/globaltime"
)

// unknownUserHash is a throwaway bcrypt hash (cost 12) that matches no
// password issued by this service. Login attempts for unknown usernames are
// compared against it so they cost the same as attempts for real accounts.
const unknownUserHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid login payload", nil)
	}

	username := auth.NormalizeUsername(req.Username)
	if username == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Username and password are required", nil)
	}

	// Unknown usernames (and a missing configured hash) still pay for one
	// full bcrypt comparison so response time does not reveal which accounts
	// exist.
	hash := s.authCfg.AdminPasswordHash
	known := username == auth.NormalizeUsername(s.authCfg.AdminUser)
	if !known || strings.TrimSpace(hash) == "" {
		hash = unknownUserHash
		known = false
	}
	if !auth.VerifyPassword(req.Password, hash) || !known {
		s.logger.Warn().Str("username", username).Msg("login rejected")
		return fail(c, http.StatusUnauthorized, "Invalid username or password", nil)
	}

	token, err := auth.IssueToken(s.authCfg.TokenSecret, username, s.authCfg.TokenTTL, globaltime.UTC())
	if err != nil {
		s.logger.Error().Err(err).Msg("token issue failed")
		return internalError(c, "Internal server error")
	}

	c.SetCookie(s.authCookie(token, s.authCfg.TokenTTL))
	return success(c, map[string]any{"username": username})
}

func (s *Server) handleLogout(c echo.Context) error {
	c.SetCookie(s.authCookie("", -time.Hour))
	return success(c, nil)
}

func (s *Server) requireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(s.authCfg.CookieName)
			if err != nil || strings.TrimSpace(cookie.Value) == "" {
				return fail(c, http.StatusUnauthorized, "Authentication required", nil)
			}

			claims, err := auth.VerifyToken(s.authCfg.TokenSecret, cookie.Value)
			if err != nil {
				return fail(c, http.StatusUnauthorized, "Invalid or expired session", nil)
			}

			c.Set("username", claims.Username)
			return next(c)
		}
	}
}

func (s *Server) authCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     s.authCfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.authCfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

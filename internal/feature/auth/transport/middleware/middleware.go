// Package middleware provides the session-cookie request middleware.
package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mono_backend/internal/feature/auth/domain/entity"
)

const (
	// CookieName is the name of the session cookie. The cookie value is an
	// opaque token; all session state lives server-side.
	CookieName = "mono_session"

	// ContextSessionToken is the gin context key holding the request's session token.
	ContextSessionToken = "sessionToken"

	// ContextUser is the gin context key holding the resolved current user.
	ContextUser = "currentUser"

	cookieMaxAge = 7 * 24 * 60 * 60 // seconds, matches the session TTL
)

// UserResolver resolves a session token to the logged-in user.
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（middleware）が定義します。
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (*entity.User, error)
}

// EnsureSession guarantees every request carries a session token cookie and
// stores the token in the gin context. Anonymous visitors get a token too so
// that flash messages survive redirects before login.
func EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			token = uuid.NewString()
			SetSessionCookie(c, token)
		}
		c.Set(ContextSessionToken, token)
		c.Next()
	}
}

// CurrentUser populates the current user from the session token once per
// request, before any handler runs. An unknown token or a session pointing at
// a user that no longer exists resolves to anonymous, never to an error.
func CurrentUser(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := Token(c); token != "" {
			if user, err := resolver.ResolveUser(c.Request.Context(), token); err == nil {
				c.Set(ContextUser, user)
			}
		}
		c.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page, carrying the
// originally requested path so login can redirect back. The wrapped handler
// is never invoked for anonymous requests.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if User(c) == nil {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetSessionCookie writes the session cookie. Also used by the login handler
// to rotate the token on successful authentication.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(CookieName, token, cookieMaxAge, "/", "", false, true)
}

// Token returns the request's session token, or "" if EnsureSession did not run.
func Token(c *gin.Context) string {
	v, _ := c.Get(ContextSessionToken)
	s, _ := v.(string)
	return s
}

// User returns the resolved current user, or nil for anonymous requests.
func User(c *gin.Context) *entity.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

package middleware

import (
	"context"
	"net/http"
	"net/url"

	userPort "blogly/internal/ports/user"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName holds the signed session token.
	SessionCookieName = "session"

	currentUserKey = "currentUser"
)

// SessionResolver maps a session token to its user, or nil.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) *userPort.UserDTO
}

// Session resolves the current user once per request and stores it on the
// gin context. Handlers read it with CurrentUser and pass it on explicitly.
func Session(resolver SessionResolver, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user := resolver.CurrentUser(c.Request.Context(), token)
		if user == nil {
			ClearSessionCookie(c, secureCookie)
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page, remembering
// where they were headed.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by Session, or nil.
func CurrentUser(c *gin.Context) *userPort.UserDTO {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*userPort.UserDTO)
	return user
}

func SetSessionCookie(c *gin.Context, session *userPort.Session, secure bool) {
	maxAge := int(session.ExpiresAt.Sub(timeNow()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, session.Token, maxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}

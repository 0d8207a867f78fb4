package httpapi

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"blogly/internal/adapters/httpapi/middleware"
	"blogly/internal/config"
	"blogly/internal/core/apperr"
	"blogly/internal/core/forms"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	flashCookieName = "flash"
	genericError    = "Something went wrong, please try again later."
)

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("January 2, 2006") },
	"field": func(errs forms.FieldErrors, name string) string {
		return errs[name]
	},
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}

func staticFiles() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// view renders pages with the layout context every template expects.
type view struct {
	secureCookies bool
}

func (v *view) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = forms.FieldErrors{}
	}
	data["CurrentUser"] = middleware.CurrentUser(c)
	data["Flash"] = v.popFlash(c)
	data["Year"] = time.Now().Year()
	c.HTML(status, name, data)
}

// renderError maps an error's code to a status and an error page. Storage
// failures never leak their cause to the page.
func (v *view) renderError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, genericError
	switch apperr.CodeOf(err) {
	case apperr.NotFound:
		status, msg = http.StatusNotFound, "The page you are looking for does not exist."
	case apperr.Conflict:
		status, msg = http.StatusConflict, messageOf(err)
	case apperr.Validation, apperr.PasswordMismatch:
		status, msg = http.StatusUnprocessableEntity, messageOf(err)
	case apperr.InvalidCredentials, apperr.Unauthorized:
		status, msg = http.StatusUnauthorized, messageOf(err)
	default:
		config.Logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	_ = c.Error(err)
	v.render(c, status, "error.html", gin.H{"Status": status, "Message": msg})
}

func messageOf(err error) string {
	var e *apperr.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return genericError
}

func (v *view) setFlash(c *gin.Context, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, msg, 60, "/", "", v.secureCookies, true)
}

// popFlash returns the pending flash message once and clears it.
func (v *view) popFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookieName)
	if err != nil || msg == "" {
		return ""
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, "", -1, "/", "", v.secureCookies, true)
	return msg
}

// safeNext only allows redirects to local paths. Browsers drop tabs and
// newlines from URLs, so any control character is refused outright.
func safeNext(next string) string {
	const fallback = "/home"
	if strings.IndexFunc(next, unicode.IsControl) >= 0 || strings.Contains(next, "\\") {
		return fallback
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}

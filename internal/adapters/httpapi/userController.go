package httpapi

import (
	"net/http"

	"blogly/internal/adapters/httpapi/middleware"
	"blogly/internal/config"
	"blogly/internal/core/apperr"
	"blogly/internal/core/forms"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type UserController struct {
	uc UserUseCase
	v  *view
}

func NewUserController(uc UserUseCase, v *view) *UserController {
	return &UserController{uc: uc, v: v}
}

func (ctl *UserController) LoginForm(c *gin.Context) {
	ctl.v.render(c, http.StatusOK, "login.html", gin.H{
		"Form": forms.LoginInput{},
		"Next": c.Query("next"),
	})
}

func (ctl *UserController) Login(c *gin.Context) {
	var in forms.LoginInput
	if err := c.ShouldBindWith(&in, binding.FormPost); err != nil {
		ctl.v.renderError(c, apperr.Wrap(apperr.Validation, "The form could not be processed.", err))
		return
	}
	in.Normalize()
	next := c.PostForm("next")

	if errs := forms.Validate(&in); !errs.Valid() {
		ctl.v.render(c, http.StatusUnprocessableEntity, "login.html", gin.H{"Form": in, "Errors": errs, "Next": next})
		return
	}

	u, err := ctl.uc.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if apperr.Is(err, apperr.InvalidCredentials) {
			ctl.v.render(c, http.StatusUnauthorized, "login.html", gin.H{
				"Form":  forms.LoginInput{Email: in.Email},
				"Next":  next,
				"Error": messageOf(err),
			})
			return
		}
		ctl.v.renderError(c, err)
		return
	}

	session, err := ctl.uc.StartSession(c.Request.Context(), u.ID)
	if err != nil {
		ctl.v.renderError(c, err)
		return
	}
	middleware.SetSessionCookie(c, session, ctl.v.secureCookies)
	c.Redirect(http.StatusSeeOther, safeNext(next))
}

func (ctl *UserController) RegisterForm(c *gin.Context) {
	ctl.v.render(c, http.StatusOK, "register.html", gin.H{"Form": forms.RegisterInput{}})
}

func (ctl *UserController) Register(c *gin.Context) {
	var in forms.RegisterInput
	if err := c.ShouldBindWith(&in, binding.FormPost); err != nil {
		ctl.v.renderError(c, apperr.Wrap(apperr.Validation, "The form could not be processed.", err))
		return
	}
	in.Normalize()

	// Passwords are never echoed back into the form.
	redisplay := forms.RegisterInput{Username: in.Username, Email: in.Email}

	if errs := forms.Validate(&in); !errs.Valid() {
		ctl.v.render(c, http.StatusUnprocessableEntity, "register.html", gin.H{"Form": redisplay, "Errors": errs})
		return
	}

	_, err := ctl.uc.RegisterUser(c.Request.Context(), in.Username, in.Email, in.Password, in.ConfirmPassword)
	switch {
	case err == nil:
	case apperr.Is(err, apperr.Conflict):
		ctl.v.render(c, http.StatusConflict, "register.html", gin.H{"Form": redisplay, "Error": messageOf(err)})
		return
	case apperr.Is(err, apperr.Validation):
		errs := forms.FieldErrors{}
		errs.Add("password", messageOf(err))
		ctl.v.render(c, http.StatusUnprocessableEntity, "register.html", gin.H{"Form": redisplay, "Errors": errs})
		return
	case apperr.Is(err, apperr.PasswordMismatch):
		ctl.v.render(c, http.StatusUnprocessableEntity, "register.html", gin.H{"Form": redisplay, "Error": messageOf(err)})
		return
	default:
		ctl.v.renderError(c, err)
		return
	}

	ctl.v.setFlash(c, "Account created, please log in.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (ctl *UserController) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookieName)
	if err := ctl.uc.EndSession(c.Request.Context(), token); err != nil {
		config.Logger.Error("Ending session failed", zap.Error(err))
	}
	middleware.ClearSessionCookie(c, ctl.v.secureCookies)
	ctl.v.setFlash(c, "Logged out successfully.")
	c.Redirect(http.StatusSeeOther, "/login")
}

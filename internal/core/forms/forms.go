// Package forms validates submitted form input. Validation is pure: it never
// touches storage.
package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterInput is the registration form.
type RegisterInput struct {
	Username        string `form:"name" validate:"required,min=3,max=100"`
	Email           string `form:"email" validate:"required,email,max=100"`
	Password        string `form:"password" validate:"required,min=6,maxbytes=72"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// PostInput is shared by the create and edit forms.
type PostInput struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	BgImg    string `form:"bg_img" validate:"required,max=250"`
	Content  string `form:"content" validate:"required"`
}

// CommentInput is the comment box under a post.
type CommentInput struct {
	Text string `form:"comment" validate:"required,max=5000"`
}

// FieldErrors maps a form field name to a message.
type FieldErrors map[string]string

func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

func (fe FieldErrors) Valid() bool { return len(fe) == 0 }

// MaxPasswordBytes is the most bcrypt will hash.
const MaxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}
	return v
}

// maxBytes limits the encoded length of a string, where max counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Normalize trims surrounding whitespace from every text field except
// passwords and lower-cases emails.
func (in *RegisterInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = NormalizeEmail(in.Email)
}

func (in *LoginInput) Normalize() {
	in.Email = NormalizeEmail(in.Email)
}

func (in *PostInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	in.BgImg = strings.TrimSpace(in.BgImg)
	in.Content = strings.TrimSpace(in.Content)
}

func (in *CommentInput) Normalize() {
	in.Text = strings.TrimSpace(in.Text)
}

// NormalizeEmail is the canonical form emails are stored and matched in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks one of the input structs and returns its violations keyed
// by form field name. The result is empty when the input is valid.
func Validate(input any) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(input)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("form", "The form could not be processed.")
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fieldName(fe.StructField()), message(fe))
	}
	return errs
}

var fieldNames = map[string]string{
	"Username":        "name",
	"Email":           "email",
	"Password":        "password",
	"ConfirmPassword": "confirm_password",
	"Title":           "title",
	"Subtitle":        "subtitle",
	"BgImg":           "bg_img",
	"Content":         "content",
	"Text":            "comment",
}

var labels = map[string]string{
	"Username":        "Name",
	"Email":           "Email",
	"Password":        "Password",
	"ConfirmPassword": "Password confirmation",
	"Title":           "Title",
	"Subtitle":        "Subtitle",
	"BgImg":           "Background image URL",
	"Content":         "Content",
	"Text":            "Comment",
}

func fieldName(structField string) string {
	if name, ok := fieldNames[structField]; ok {
		return name
	}
	return strings.ToLower(structField)
}

func message(fe validator.FieldError) string {
	label, ok := labels[fe.StructField()]
	if !ok {
		label = fe.StructField()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s is too long (at most %s bytes).", label, fe.Param())
	case "eqfield":
		return "The password confirmation does not match."
	}
	return label + " is invalid."
}

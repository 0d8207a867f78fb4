package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	cases := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"valid", RegisterInput{"alice", "alice@example.com", "secret1", "secret1"}, ""},
		{"missing name", RegisterInput{"", "alice@example.com", "secret1", "secret1"}, "name"},
		{"short name", RegisterInput{"al", "alice@example.com", "secret1", "secret1"}, "name"},
		{"bad email", RegisterInput{"alice", "not-an-email", "secret1", "secret1"}, "email"},
		{"short password", RegisterInput{"alice", "alice@example.com", "123", "123"}, "password"},
		{"mismatch", RegisterInput{"alice", "alice@example.com", "secret1", "secret2"}, "confirm_password"},
		{"password at byte limit", RegisterInput{"alice", "alice@example.com", strings.Repeat("a", 72), strings.Repeat("a", 72)}, ""},
		{"password over byte limit", RegisterInput{"alice", "alice@example.com", strings.Repeat("a", 80), strings.Repeat("a", 80)}, "password"},
		{"multibyte password over byte limit", RegisterInput{"alice", "alice@example.com", strings.Repeat("€", 25), strings.Repeat("€", 25)}, "password"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			errs := Validate(&c.in)
			if c.field == "" {
				assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
				return
			}
			assert.Contains(t, errs, c.field)
		})
	}
}

func TestValidateMismatchMessage(t *testing.T) {
	errs := Validate(&RegisterInput{"alice", "alice@example.com", "secret1", "other12"})
	assert.Equal(t, "The password confirmation does not match.", errs["confirm_password"])
}

func TestValidatePasswordTooLongMessage(t *testing.T) {
	long := strings.Repeat("a", MaxPasswordBytes+1)
	errs := Validate(&RegisterInput{"alice", "alice@example.com", long, long})
	assert.Equal(t, FieldErrors{"password": "Password is too long (at most 72 bytes)."}, errs)
}

func TestValidatePostReportsEveryMissingField(t *testing.T) {
	errs := Validate(&PostInput{})
	assert.Len(t, errs, 4)
	assert.Equal(t, "Title is required.", errs["title"])
	assert.Equal(t, "Background image URL is required.", errs["bg_img"])
}

func TestValidatePostLength(t *testing.T) {
	in := PostInput{
		Title:    strings.Repeat("t", 251),
		Subtitle: "sub",
		BgImg:    "https://example.com/bg.jpg",
		Content:  "<p>hello</p>",
	}
	errs := Validate(&in)
	assert.Equal(t, FieldErrors{"title": "Title must be at most 250 characters."}, errs)
}

func TestValidateComment(t *testing.T) {
	assert.True(t, Validate(&CommentInput{Text: "nice post"}).Valid())
	assert.Contains(t, Validate(&CommentInput{}), "comment")
}

func TestNormalize(t *testing.T) {
	in := RegisterInput{Username: "  bob ", Email: " Bob@Example.COM "}
	in.Normalize()
	assert.Equal(t, "bob", in.Username)
	assert.Equal(t, "bob@example.com", in.Email)

	p := PostInput{Title: " Hello ", Content: "\nbody\n"}
	p.Normalize()
	assert.Equal(t, "Hello", p.Title)
	assert.Equal(t, "body", p.Content)
}

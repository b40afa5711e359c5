// Package validate holds the per-endpoint input rules. Every function is
// pure: it normalizes the supplied values in place (trim, lowercase) and
// returns one FieldError per failed field, never short-circuiting after
// the first failure so the client receives the full picture at once.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/photo-feed/internal/apperr"
)

// Values is the normalized string form of a request body, keyed by field
// name. Middleware builds it from either JSON or multipart form input.
type Values map[string]string

const (
	nameMin     = 3
	nameMax     = 50
	emailMin    = 3
	emailMax    = 254
	passwordMin = 6
	passwordMax = 15
	textMax     = 500 // captions and comments share the same cap
)

// Signup validates name, email and password for account creation.
func Signup(v Values) []apperr.FieldError {
	v["name"] = strings.TrimSpace(v["name"])
	v["email"] = strings.ToLower(strings.TrimSpace(v["email"]))

	var errs []apperr.FieldError
	if msg := checkLength("name", v["name"], nameMin, nameMax); msg != "" {
		errs = append(errs, apperr.FieldError{Field: "name", Message: msg})
	}
	if msg := checkEmail(v["email"]); msg != "" {
		errs = append(errs, apperr.FieldError{Field: "email", Message: msg})
	}
	if msg := checkLength("password", v["password"], passwordMin, passwordMax); msg != "" {
		errs = append(errs, apperr.FieldError{Field: "password", Message: msg})
	}
	return errs
}

// Signin validates credentials for authentication. Formats are checked
// but lengths are not enforced as strictly as at signup.
func Signin(v Values) []apperr.FieldError {
	v["email"] = strings.ToLower(strings.TrimSpace(v["email"]))

	var errs []apperr.FieldError
	if v["email"] == "" {
		errs = append(errs, apperr.FieldError{Field: "email", Message: "The email field is required."})
	} else if addr, err := mail.ParseAddress(v["email"]); err != nil || addr.Address != v["email"] {
		errs = append(errs, apperr.FieldError{Field: "email", Message: "The email format is invalid."})
	}
	if v["password"] == "" {
		errs = append(errs, apperr.FieldError{Field: "password", Message: "The password field is required."})
	}
	return errs
}

// PostCreate validates a new post. The image arrives either as an
// uploaded file (hasFile) or as an explicit path reference in the body;
// one of the two must be present.
func PostCreate(v Values, hasFile bool) []apperr.FieldError {
	v["description"] = strings.TrimSpace(v["description"])
	v["image"] = strings.TrimSpace(v["image"])

	var errs []apperr.FieldError
	if !hasFile && v["image"] == "" {
		errs = append(errs, apperr.FieldError{Field: "image", Message: "Image is required."})
	}
	if utf8.RuneCountInString(v["description"]) > textMax {
		errs = append(errs, apperr.FieldError{
			Field:   "description",
			Message: fmt.Sprintf("The description may not be greater than %d characters.", textMax),
		})
	}
	return errs
}

// PostEdit validates a post update: at least one of image or description
// must be supplied.
func PostEdit(v Values, hasFile bool) []apperr.FieldError {
	v["description"] = strings.TrimSpace(v["description"])
	v["image"] = strings.TrimSpace(v["image"])

	var errs []apperr.FieldError
	if !hasFile && v["image"] == "" && v["description"] == "" {
		errs = append(errs, apperr.FieldError{
			Field:   "description",
			Message: "Provide at least one field to update.",
		})
	}
	if utf8.RuneCountInString(v["description"]) > textMax {
		errs = append(errs, apperr.FieldError{
			Field:   "description",
			Message: fmt.Sprintf("The description may not be greater than %d characters.", textMax),
		})
	}
	return errs
}

// Comment validates comment content: required, 1-500 characters after
// trimming.
func Comment(v Values) []apperr.FieldError {
	v["content"] = strings.TrimSpace(v["content"])

	var errs []apperr.FieldError
	switch n := utf8.RuneCountInString(v["content"]); {
	case n == 0:
		errs = append(errs, apperr.FieldError{Field: "content", Message: "Comment content is required."})
	case n > textMax:
		errs = append(errs, apperr.FieldError{
			Field:   "content",
			Message: fmt.Sprintf("Comment must be %d characters or less.", textMax),
		})
	}
	return errs
}

func checkLength(field, value string, min, max int) string {
	if value == "" {
		return fmt.Sprintf("The %s field is required.", field)
	}
	if n := utf8.RuneCountInString(value); n < min || n > max {
		return fmt.Sprintf("The %s must be between %d and %d characters.", field, min, max)
	}
	return ""
}

func checkEmail(email string) string {
	if email == "" {
		return "The email field is required."
	}
	if n := len(email); n < emailMin || n > emailMax {
		return fmt.Sprintf("The email must be between %d and %d characters.", emailMin, emailMax)
	}
	// ParseAddress also accepts display-name forms like "A <a@b.com>";
	// only a bare address may pass, since the whole string gets stored.
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "The email format is invalid."
	}
	return ""
}

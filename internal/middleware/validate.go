package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-feed/internal/apperr"
	"github.com/iliyamo/photo-feed/internal/validate"
)

// CtxForm carries the normalized request values from the validation
// stage to the handler.
const CtxForm = "form"

// ValidateSignup checks name/email/password and stores the normalized
// values for the handler.
func ValidateSignup() echo.MiddlewareFunc {
	return validationStage(func(c echo.Context) (validate.Values, []apperr.FieldError) {
		v := bindValues(c, "name", "email", "password")
		return v, validate.Signup(v)
	})
}

// ValidateSignin checks the credential fields.
func ValidateSignin() echo.MiddlewareFunc {
	return validationStage(func(c echo.Context) (validate.Values, []apperr.FieldError) {
		v := bindValues(c, "email", "password")
		return v, validate.Signin(v)
	})
}

// ValidatePostCreate requires an image (uploaded file or explicit path
// reference) and caps the caption length.
func ValidatePostCreate() echo.MiddlewareFunc {
	return validationStage(func(c echo.Context) (validate.Values, []apperr.FieldError) {
		v := bindValues(c, "description", "image")
		return v, validate.PostCreate(v, c.Get(CtxImagePath) != nil)
	})
}

// ValidatePostEdit requires at least one updatable field.
func ValidatePostEdit() echo.MiddlewareFunc {
	return validationStage(func(c echo.Context) (validate.Values, []apperr.FieldError) {
		v := bindValues(c, "description", "image")
		return v, validate.PostEdit(v, c.Get(CtxImagePath) != nil)
	})
}

// ValidateComment requires non-empty content of at most 500 characters.
func ValidateComment() echo.MiddlewareFunc {
	return validationStage(func(c echo.Context) (validate.Values, []apperr.FieldError) {
		v := bindValues(c, "content")
		return v, validate.Comment(v)
	})
}

func validationStage(check func(echo.Context) (validate.Values, []apperr.FieldError)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, errs := check(c)
			if len(errs) > 0 {
				return apperr.Validation(errs...)
			}
			c.Set(CtxForm, v)
			return next(c)
		}
	}
}

// bindValues extracts the named fields from either a JSON body or a
// (multipart) form, as strings. The upload stage has already parsed
// multipart bodies by the time this runs.
func bindValues(c echo.Context, keys ...string) validate.Values {
	v := validate.Values{}
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		body := map[string]any{}
		_ = c.Bind(&body)
		for _, k := range keys {
			if s, ok := body[k].(string); ok {
				v[k] = s
			} else {
				v[k] = ""
			}
		}
		return v
	}
	for _, k := range keys {
		v[k] = c.FormValue(k)
	}
	return v
}

// Form returns the normalized values stored by the validation stage.
func Form(c echo.Context) validate.Values {
	if v, ok := c.Get(CtxForm).(validate.Values); ok {
		return v
	}
	return validate.Values{}
}

package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/foliolabs/core/internal/pkg/response"
	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var instance = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so errors line up with the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}()

// Struct validates a payload struct and converts failures into field-level
// errors. A nil return means the payload passed every rule.
func Struct(payload interface{}) []response.FieldError {
	err := instance.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []response.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, response.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return fields
}

// IsSlug reports whether s is a URL-safe lowercase-hyphen slug.
func IsSlug(s string) bool { return slugPattern.MatchString(s) }

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", titleCase(fe.Field()))
	case "slug":
		return "Slug must be lowercase with hyphens"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", titleCase(fe.Field()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", titleCase(fe.Field()), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", titleCase(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", titleCase(fe.Field()))
	}
}

// titleCase turns a json field name like "cover_image_url" into
// "Cover image url" for user-facing messages.
func titleCase(field string) string {
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

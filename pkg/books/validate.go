package books

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields by their json names so messages match the stored keys
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return v
}

// ValidationError maps each invalid field to a message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}

	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, name+" "+e.Fields[name])
	}

	return "invalid book: " + strings.Join(msgs, ", ")
}

// Validate checks the draft before it is added. Name and author are required after
// trimming whitespace.
func (d Draft) Validate() error {
	trimmed := d
	trimmed.Name = strings.TrimSpace(d.Name)
	trimmed.Author = strings.TrimSpace(d.Author)

	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("error validating book: %w", err)
	}

	verr := &ValidationError{Fields: map[string]string{}}
	for _, fe := range fieldErrs {
		verr.Fields[fe.Field()] = friendlyMessage(fe)
	}

	return verr
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "datetime":
		return "must be a YYYY-MM-DD date"
	}

	return "is invalid"
}

// Package validation checks editor drafts before they are submitted. Rules are
// declared as `validate` struct tags on the clinic records and reported as a
// map from JSON field name to message.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"mediassist/internal/clinic"
)

var (
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	mailboxPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ErrorMap maps a field's wire name to its message. An empty map means the
// draft may be submitted; nil is never returned.
type ErrorMap map[string]string

// Empty reports whether no field failed.
func (m ErrorMap) Empty() bool {
	return len(m) == 0
}

func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Without returns a copy of m lacking field's error.
func (m ErrorMap) Without(field string) ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		if k != field {
			out[k] = v
		}
	}
	return out
}

// Fields returns the failing field names in sorted order.
func (m ErrorMap) Fields() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Error wraps a non-empty ErrorMap so callers can return it as an error.
type Error struct {
	Fields ErrorMap
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"phone": func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		},
		"mailbox": func(fl validator.FieldLevel) bool {
			return mailboxPattern.MatchString(fl.Field().String())
		},
		"finite": func(fl validator.FieldLevel) bool {
			return clinic.Numeric(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("registering %s rule: %v", tag, err))
		}
	}
	return v
}

type messageFunc func(fe validator.FieldError, label string) string

func recordMessage(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "notblank", "required":
		return label + " is required."
	case "phone":
		return label + " must be 10 digits."
	case "mailbox":
		return label + " has an invalid format."
	case "finite":
		return "A valid " + strings.ToLower(label) + " is required."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(strings.Fields(fe.Param()), ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	}
	return label + " is invalid."
}

func credentialMessage(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "notblank":
		return label + " is required"
	case "mailbox":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	}
	return label + " is invalid"
}

// Validate runs every rule of rec's kind. It has no side effects.
func Validate(rec clinic.Record) ErrorMap {
	return check(rec, recordMessage)
}

// Credentials validates the login or signup form. Username is only checked
// when signing up.
func Credentials(c clinic.Credentials, signup bool) ErrorMap {
	errs := check(c, credentialMessage)
	if !signup {
		delete(errs, "username")
	}
	return errs
}

func check(v any, msg messageFunc) ErrorMap {
	errs := ErrorMap{}
	err := validate.Struct(v)
	if err == nil {
		return errs
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}

	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range fieldErrs {
		label := fe.StructField()
		if sf, found := t.FieldByName(fe.StructField()); found {
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
		}
		errs[fe.Field()] = msg(fe, label)
	}
	return errs
}

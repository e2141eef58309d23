package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9+()\-\s]{7,20}$`)

// FieldErrors maps a json field name to a display message. It is the shape
// inline form errors are rendered from.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add records msg for field unless one is already present.
func (e FieldErrors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Err returns nil for an empty set.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Validator provides validation functionality
type Validator interface {
	Validate(interface{}) error
	ValidateField(field string, value interface{}, rules string) error
}

type validator struct {
	v        *playground.Validate
	messages map[string]string
}

// New returns a validator that reports json field names and registers the
// phone tag.
func New() Validator {
	v := playground.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("phone", func(fl playground.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validator: register phone: %v", err))
	}

	return &validator{
		v: v,
		messages: map[string]string{
			"required": "is required",
			"email":    "must be a valid email",
			"phone":    "must be a valid phone number",
			"hexcolor": "must be a hex color",
			"oneof":    "has an unsupported value",
		},
	}
}

func (v *validator) Validate(obj interface{}) error {
	err := v.v.Struct(obj)
	if err == nil {
		return nil
	}
	return v.translate(err, "")
}

func (v *validator) ValidateField(field string, value interface{}, rules string) error {
	err := v.v.Var(value, rules)
	if err == nil {
		return nil
	}
	return v.translate(err, field)
}

func (v *validator) translate(err error, field string) error {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		name := field
		if name == "" {
			name = fe.Field()
		}
		out.Add(name, v.message(fe))
	}
	return out
}

func (v *validator) message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	}
	if msg, ok := v.messages[fe.Tag()]; ok {
		return msg
	}
	return fe.Error()
}

// IsPhone reports whether s looks like a dialable number.
func IsPhone(s string) bool {
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}

// Package formschema holds the field type table that drives dynamic patient
// forms: per-type validation, payload encoding and template schema checks.
package formschema

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/pkg/validator"
)

// DateLayout is the wire and input format of date fields.
const DateLayout = "2006-01-02"

// Kind is the behaviour attached to one field type. Validate and Encode only
// see non-empty input; emptiness is handled by the required check.
type Kind struct {
	Validate func(f model.Field, raw string) error
	Encode   func(raw string) (any, error)
	// Seed renders a stored default value as raw input.
	Seed func(v any) string
}

var checker = validator.New()

var kinds = map[model.FieldType]Kind{
	model.FieldText:     {Validate: acceptAny, Encode: asString, Seed: seedString},
	model.FieldTextarea: {Validate: acceptAny, Encode: asString, Seed: seedString},
	model.FieldNumber:   {Validate: validateNumber, Encode: encodeNumber, Seed: seedNumber},
	model.FieldDate:     {Validate: validateDate, Encode: asString, Seed: seedString},
	model.FieldBoolean:  {Validate: validateBool, Encode: encodeBool, Seed: seedBool},
	model.FieldSelect:   {Validate: validateSelect, Encode: asString, Seed: seedString},
	model.FieldEmail:    {Validate: validateEmail, Encode: asString, Seed: seedString},
	model.FieldPhone:    {Validate: validatePhone, Encode: asString, Seed: seedString},
}

// KindOf returns the behaviour registered for t.
func KindOf(t model.FieldType) (Kind, bool) {
	k, ok := kinds[t]
	return k, ok
}

// ValidateValue checks raw input against f. Required fields reject blank
// input for every type.
func ValidateValue(f model.Field, raw string) error {
	k, ok := kinds[f.Type]
	if !ok {
		return fmt.Errorf("unsupported field type %q", f.Type)
	}
	if strings.TrimSpace(raw) == "" {
		if f.Required {
			return errors.New("is required")
		}
		return nil
	}
	return k.Validate(f, strings.TrimSpace(raw))
}

// Normalize returns f with options consistent with its type: non-select
// fields carry none, select options are trimmed and de-duplicated.
func Normalize(f model.Field) model.Field {
	f = f.Clone()
	if f.Type != model.FieldSelect {
		f.Options = nil
		return f
	}
	f.Options = CleanOptions(f.Options)
	return f
}

// CleanOptions trims options and drops blanks and repeats, keeping first
// occurrence order.
func CleanOptions(opts []string) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		o = strings.TrimSpace(o)
		if o == "" || slices.Contains(out, o) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func acceptAny(model.Field, string) error { return nil }

func validateNumber(_ model.Field, raw string) error {
	if _, err := parseNumber(raw); err != nil {
		return errors.New("must be a number")
	}
	return nil
}

func validateDate(_ model.Field, raw string) error {
	if _, err := time.Parse(DateLayout, raw); err != nil {
		return errors.New("must be a date (YYYY-MM-DD)")
	}
	return nil
}

func validateBool(_ model.Field, raw string) error {
	if raw != "true" && raw != "false" {
		return errors.New("must be true or false")
	}
	return nil
}

func validateSelect(f model.Field, raw string) error {
	if !slices.Contains(f.Options, raw) {
		return fmt.Errorf("must be one of %s", strings.Join(f.Options, ", "))
	}
	return nil
}

func validateEmail(f model.Field, raw string) error {
	if err := checker.ValidateField(f.Name, raw, "email"); err != nil {
		return errors.New("must be a valid email")
	}
	return nil
}

func validatePhone(_ model.Field, raw string) error {
	if !validator.IsPhone(raw) {
		return errors.New("must be a valid phone number")
	}
	return nil
}

func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}

func asString(raw string) (any, error) { return raw, nil }

func encodeNumber(raw string) (any, error) { return parseNumber(raw) }

func encodeBool(raw string) (any, error) { return strconv.ParseBool(raw) }

func seedString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func seedNumber(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return seedString(v)
	}
}

func seedBool(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case string:
		if b, err := strconv.ParseBool(x); err == nil {
			return strconv.FormatBool(b)
		}
	}
	return ""
}

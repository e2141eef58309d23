package formschema

import (
	"fmt"
	"strings"

	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/pkg/validator"
)

// Values is the raw input of a dynamic form keyed by field name.
type Values map[string]string

// NewValues seeds raw input from the template's default values.
func NewValues(t model.Template) Values {
	v := Values{}
	for _, s := range t.Sections {
		for _, f := range s.Fields {
			v[f.Name] = SeedValue(f)
		}
	}
	return v
}

// FromPayload rebuilds raw input from a stored customFields payload. Keys the
// template does not know are dropped.
func FromPayload(t model.Template, payload map[string]any) Values {
	v := NewValues(t)
	for _, s := range t.Sections {
		for _, f := range s.Fields {
			raw, ok := payload[f.Name]
			if !ok {
				continue
			}
			if k, ok := kinds[f.Type]; ok {
				v[f.Name] = k.Seed(raw)
			}
		}
	}
	return v
}

// Validate checks every field of t. The result is nil or validator.FieldErrors
// keyed by field name.
func (v Values) Validate(t model.Template) error {
	errs := validator.FieldErrors{}
	for _, s := range t.Sections {
		for _, f := range s.Fields {
			if err := ValidateValue(f, v[f.Name]); err != nil {
				errs.Add(f.Name, err.Error())
			}
		}
	}
	return errs.Err()
}

// Payload encodes the values for submission. Empty optional fields are
// omitted.
func (v Values) Payload(t model.Template) (map[string]any, error) {
	out := map[string]any{}
	for _, s := range t.Sections {
		for _, f := range s.Fields {
			raw := strings.TrimSpace(v[f.Name])
			if raw == "" {
				continue
			}
			k, ok := kinds[f.Type]
			if !ok {
				return nil, fmt.Errorf("field %q: unsupported type %q", f.Name, f.Type)
			}
			val, err := k.Encode(raw)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			out[f.Name] = val
		}
	}
	return out, nil
}

// SeedValue renders f's default value as raw input.
func SeedValue(f model.Field) string {
	k, ok := kinds[f.Type]
	if !ok {
		return ""
	}
	return k.Seed(f.Default)
}

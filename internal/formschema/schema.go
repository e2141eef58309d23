package formschema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jwalitptl/clinicdesk/internal/model"
)

// SchemaErrors is the accumulated list of problems found in a template.
type SchemaErrors []string

func (e SchemaErrors) Error() string {
	return "invalid template: " + strings.Join(e, "; ")
}

// ValidateTemplate checks a template before it is saved. All problems are
// reported, not just the first.
func ValidateTemplate(t model.Template) error {
	var errs SchemaErrors
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(t.Name) == "" {
		add("template name is required")
	}

	seen := map[string]string{}
	for si, s := range t.Sections {
		sectionRef := s.Name
		if strings.TrimSpace(s.Name) == "" {
			sectionRef = fmt.Sprintf("#%d", si+1)
			add("section %s has no name", sectionRef)
		}

		orders := make([]int, 0, len(s.Fields))
		for _, f := range s.Fields {
			orders = append(orders, f.Order)
			name := strings.TrimSpace(f.Name)
			if name == "" {
				add("section %s has a field without a name", sectionRef)
			} else if prev, dup := seen[name]; dup {
				add("field %q appears in section %s and %s", name, prev, sectionRef)
			} else {
				seen[name] = sectionRef
			}

			if _, ok := kinds[f.Type]; !ok {
				add("field %q has unsupported type %q", f.Name, f.Type)
				continue
			}
			if f.Type == model.FieldSelect {
				if len(CleanOptions(f.Options)) == 0 {
					add("select field %q has no options", f.Name)
				} else if len(CleanOptions(f.Options)) != len(f.Options) {
					add("select field %q has blank or duplicate options", f.Name)
				}
			}
		}
		if !dense(orders) {
			add("field order in section %s must be unique and consecutive", sectionRef)
		}
	}

	defaults := 0
	for _, st := range t.StatusOptions {
		if strings.TrimSpace(st.Name) == "" {
			add("status option without a name")
		}
		if st.IsDefault {
			defaults++
		}
		if err := checker.ValidateField("color", st.Color, "required,hexcolor"); err != nil {
			add("status %q has invalid color %q", st.Name, st.Color)
		}
	}
	if defaults > 1 {
		add("only one status option may be the default")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func dense(orders []int) bool {
	if len(orders) == 0 {
		return true
	}
	sorted := slices.Clone(orders)
	slices.Sort(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

// SortedFields returns a copy of the section's fields in order sequence.
// Ties keep their declared position.
func SortedFields(s model.Section) []model.Field {
	fields := slices.Clone(s.Fields)
	slices.SortStableFunc(fields, func(a, b model.Field) int { return a.Order - b.Order })
	return fields
}

// Sorted returns the template's sections with fields in render order.
func Sorted(t model.Template) []model.Section {
	out := make([]model.Section, len(t.Sections))
	for i, s := range t.Sections {
		s = s.Clone()
		s.Fields = SortedFields(s)
		out[i] = s
	}
	return out
}

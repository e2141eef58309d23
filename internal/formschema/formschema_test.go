package formschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/pkg/validator"
)

func sampleTemplate() model.Template {
	return model.Template{
		Name: "Cardiology intake",
		Sections: []model.Section{
			{
				Name:  "history",
				Label: "History",
				Fields: []model.Field{
					{Name: "onset", Label: "Onset", Type: model.FieldDate, Order: 1},
					{Name: "pain_score", Label: "Pain score", Type: model.FieldNumber, Required: true, Order: 0},
					{Name: "smoker", Label: "Smoker", Type: model.FieldBoolean, Default: false, Order: 2},
				},
			},
			{
				Name:  "contact",
				Label: "Contact",
				Fields: []model.Field{
					{Name: "ward", Label: "Ward", Type: model.FieldSelect, Options: []string{"A", "B"}, Default: "A", Order: 0},
					{Name: "email", Label: "Email", Type: model.FieldEmail, Order: 1},
					{Name: "phone", Label: "Phone", Type: model.FieldPhone, Order: 2},
				},
			},
		},
		StatusOptions: []model.PatientStatusOption{
			{Name: "admitted", Label: "Admitted", Color: "#22aa55", IsDefault: true},
			{Name: "discharged", Label: "Discharged", Color: "#999999"},
		},
	}
}

func TestEveryFieldTypeHasKind(t *testing.T) {
	for _, ft := range model.FieldTypes {
		k, ok := KindOf(ft)
		require.True(t, ok, "no kind for %s", ft)
		assert.NotNil(t, k.Validate)
		assert.NotNil(t, k.Encode)
		assert.NotNil(t, k.Seed)
	}
}

func TestValidateValue(t *testing.T) {
	sel := model.Field{Name: "ward", Type: model.FieldSelect, Options: []string{"A", "B"}}
	cases := []struct {
		name  string
		field model.Field
		raw   string
		ok    bool
	}{
		{"number ok", model.Field{Type: model.FieldNumber}, "12.5", true},
		{"number bad", model.Field{Type: model.FieldNumber}, "twelve", false},
		{"date ok", model.Field{Type: model.FieldDate}, "2024-02-29", true},
		{"date bad", model.Field{Type: model.FieldDate}, "29/02/2024", false},
		{"email ok", model.Field{Type: model.FieldEmail}, "a@b.io", true},
		{"email bad", model.Field{Type: model.FieldEmail}, "a@", false},
		{"phone ok", model.Field{Type: model.FieldPhone}, "+1 (555) 123-4567", true},
		{"phone short", model.Field{Type: model.FieldPhone}, "12345", false},
		{"phone letters", model.Field{Type: model.FieldPhone}, "555-CALL-NOW", false},
		{"bool ok", model.Field{Type: model.FieldBoolean}, "true", true},
		{"bool bad", model.Field{Type: model.FieldBoolean}, "yes", false},
		{"select ok", sel, "B", true},
		{"select bad", sel, "C", false},
		{"optional blank", model.Field{Type: model.FieldNumber}, "", true},
		{"required blank", model.Field{Type: model.FieldText, Required: true}, "  ", false},
		{"required bool blank", model.Field{Type: model.FieldBoolean, Required: true}, "", false},
		{"unknown type", model.Field{Type: "color"}, "x", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateValue(tc.field, tc.raw)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	f := model.Field{Name: "ward", Type: model.FieldText, Options: []string{"A"}}
	assert.Nil(t, Normalize(f).Options)
	assert.Equal(t, []string{"A"}, f.Options, "input must not be modified")

	f.Type = model.FieldSelect
	f.Options = []string{" A ", "B", "", "A"}
	assert.Equal(t, []string{"A", "B"}, Normalize(f).Options)
}

func TestValidateTemplate_Valid(t *testing.T) {
	assert.NoError(t, ValidateTemplate(sampleTemplate()))
}

func TestValidateTemplate_AccumulatesProblems(t *testing.T) {
	tpl := sampleTemplate()
	tpl.Name = " "
	tpl.Sections[0].Fields[1].Order = 1
	tpl.Sections[1].Fields[1].Name = "onset"
	tpl.Sections[1].Fields[0].Options = nil
	tpl.Sections[1].Fields[2].Type = "signature"
	tpl.StatusOptions[1].IsDefault = true
	tpl.StatusOptions[1].Color = "grey"

	err := ValidateTemplate(tpl)
	require.Error(t, err)

	var errs SchemaErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 7)
	assert.Contains(t, err.Error(), "template name is required")
	assert.Contains(t, err.Error(), `field "onset" appears in section history and contact`)
	assert.Contains(t, err.Error(), `select field "ward" has no options`)
	assert.Contains(t, err.Error(), `unsupported type "signature"`)
	assert.Contains(t, err.Error(), "only one status option may be the default")
	assert.Contains(t, err.Error(), `invalid color "grey"`)
	assert.Contains(t, err.Error(), "field order in section history")
}

func TestSorted(t *testing.T) {
	sections := Sorted(sampleTemplate())
	names := []string{}
	for _, f := range sections[0].Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"pain_score", "onset", "smoker"}, names)
}

func TestValues_SeedValidatePayload(t *testing.T) {
	tpl := sampleTemplate()
	v := NewValues(tpl)
	assert.Equal(t, "A", v["ward"])
	assert.Equal(t, "false", v["smoker"])
	assert.Equal(t, "", v["pain_score"])

	err := v.Validate(tpl)
	require.Error(t, err)
	var fe validator.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "is required", fe["pain_score"])
	assert.Len(t, fe, 1)

	v["pain_score"] = "7"
	v["email"] = "nurse@clinic.io"
	require.NoError(t, v.Validate(tpl))

	payload, err := v.Payload(tpl)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"pain_score": 7.0,
		"smoker":     false,
		"ward":       "A",
		"email":      "nurse@clinic.io",
	}, payload)
}

func TestFromPayload(t *testing.T) {
	tpl := sampleTemplate()
	v := FromPayload(tpl, map[string]any{"pain_score": 3.5, "smoker": true, "legacy": "x"})

	assert.Equal(t, "3.5", v["pain_score"])
	assert.Equal(t, "true", v["smoker"])
	assert.Equal(t, "A", v["ward"])
	assert.NotContains(t, v, "legacy")
}

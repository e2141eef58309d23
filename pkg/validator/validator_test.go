package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersPhoneTag(t *testing.T) {
	var v Validator
	require.NotPanics(t, func() { v = New() })

	assert.NoError(t, v.ValidateField("phone", "+1 (555) 010-2000", "phone"))

	err := v.ValidateField("phone", "call me", "phone")
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "must be a valid phone number", fe["phone"])
}

func TestValidate_UsesJSONNames(t *testing.T) {
	type contact struct {
		Email string `json:"email" validate:"required,email"`
		Phone string `json:"phone" validate:"omitempty,phone"`
	}

	err := New().Validate(contact{Email: "nope", Phone: "12"})
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, FieldErrors{
		"email": "must be a valid email",
		"phone": "must be a valid phone number",
	}, fe)

	assert.NoError(t, New().Validate(contact{Email: "joy@clinic.io"}))
}

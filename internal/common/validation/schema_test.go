package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"properties": {"image": {"type": "string", "minLength": 1}},
	"required": ["image"]
}`

func TestValidator_Validate(t *testing.T) {
	v := MustValidator(testSchema)

	tests := []struct {
		name      string
		doc       string
		wantValid bool
		wantField string
	}{
		{"valid", `{"image":"data:image/jpeg;base64,AAAA"}`, true, ""},
		{"missing field", `{}`, false, "(root)"},
		{"empty string", `{"image":""}`, false, "image"},
		{"wrong type", `{"image":42}`, false, "image"},
		{"not an object", `["image"]`, false, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := v.Validate([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, res.Valid)
			if tt.wantField != "" {
				assert.True(t, res.HasErrors(tt.wantField), res.GetErrorMessages())
			}
		})
	}
}

func TestValidator_MalformedJSON(t *testing.T) {
	_, err := MustValidator(testSchema).Validate([]byte(`{"image":`))
	assert.Error(t, err)
}

func TestNewValidator_BadSchema(t *testing.T) {
	_, err := NewValidator(`{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustValidator(`{`) })
}

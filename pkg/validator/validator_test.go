package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	CallID   string `json:"call_id" validate:"required"`
	Duration *int   `json:"duration_seconds" validate:"omitempty,gte=0"`
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sample{})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "required", fields["call_id"])
	assert.Equal(t, "call_id failed required", Describe(err))
}

func TestValidate_Param(t *testing.T) {
	v := New()
	d := -1
	err := v.Validate(&sample{CallID: "c1", Duration: &d})
	require.Error(t, err)
	assert.Equal(t, "duration_seconds failed gte=0", Describe(err))
}

func TestValidate_OK(t *testing.T) {
	d := 0
	assert.NoError(t, New().Validate(&sample{CallID: "c1", Duration: &d}))
	assert.Nil(t, FieldErrors(nil))
}

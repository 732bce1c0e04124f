package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string  `json:"name" validate:"required"`
	Kind    string  `json:"kind" validate:"omitempty,oneof=a b"`
	Minutes *int    `json:"minutes,omitempty" validate:"omitempty,gte=15,lte=120"`
	Rate    float64 `validate:"gte=0"`
}

func TestValidator_Struct(t *testing.T) {
	req := require.New(t)
	minutes := 200

	v := New()
	v.Struct(sample{Kind: "c", Minutes: &minutes, Rate: -1})

	req.False(v.Valid())
	req.Equal("must be provided", v.Errors["name"])
	req.Equal("must be one of: a, b", v.Errors["kind"])
	req.Equal("must be at most 120", v.Errors["minutes"])
	req.Equal("must be at least 0", v.Errors["Rate"])
	req.Len(v.Errors, 4)
}

func TestValidator_StructValid(t *testing.T) {
	v := New()
	v.Struct(sample{Name: "ok", Kind: "a"})
	require.True(t, v.Valid())
}

func TestValidator_CheckKeepsFirstMessage(t *testing.T) {
	v := New()
	v.Check(false, "text", "must be provided")
	v.Check(false, "text", "must not be blank")
	v.Check(true, "other", "never")

	require.Equal(t, map[string]string{"text": "must be provided"}, v.Errors)
}

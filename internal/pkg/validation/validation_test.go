package validation_test

import (
	"testing"

	"aidmatch/internal/pkg/errs"
	"aidmatch/internal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type input struct {
	City    string `json:"city" validate:"required"`
	Urgency string `json:"urgency,omitempty" validate:"omitempty,oneof=low medium high"`
	Note    string `validate:"max=5"`
}

func TestStruct(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		require.NoError(t, validation.Struct(input{City: "Guntur", Urgency: "high"}))
	})

	t.Run("maps field errors by json name", func(t *testing.T) {
		err := validation.Struct(input{Urgency: "critical", Note: "too long"})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "city")
		assert.Contains(t, err.Error(), "urgency")
		assert.Contains(t, err.Error(), "Note")
	})
}

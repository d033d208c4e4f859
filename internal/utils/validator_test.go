// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Email string `validate:"required,email"`
	Count int    `validate:"min=1"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(&sampleForm{Email: "jane@example.com", Count: 2}))
	assert.Error(t, ValidateStruct(&sampleForm{Email: "nope", Count: 0}))
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&sampleForm{Email: "nope", Count: 0})
	require.Error(t, err)

	fields := GetValidationErrors(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "email", fields[0].Field)
	assert.Equal(t, "Invalid email format", fields[0].Message)
	assert.Equal(t, "count", fields[1].Field)
	assert.Equal(t, "Count must be at least 1", fields[1].Message)
}

func TestGetValidationErrorsNonValidatorError(t *testing.T) {
	assert.Empty(t, GetValidationErrors(assert.AnError))
}

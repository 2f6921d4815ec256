package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func engineErrors() []error {
	return []error{
		ErrValidation,
		ErrConfiguration,
		ErrStructural,
		ErrCompatibility,
		ErrIO,
		ErrStopped,
	}
}

// TestErrors_Existence tests that all error kinds exist and carry a message
func TestErrors_Existence(t *testing.T) {
	for _, err := range engineErrors() {
		assert.NotNil(t, err)
		assert.NotEmpty(t, err.Error())
	}
}

// TestErrors_Uniqueness tests that the error kinds are distinct
func TestErrors_Uniqueness(t *testing.T) {
	all := engineErrors()
	for i, err1 := range all {
		for j, err2 := range all {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

// TestErrors_Wrapping tests that wrapped errors keep their kind
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: parts count 1 outside [2, 100]", ErrConfiguration)

	assert.True(t, errors.Is(wrapped, ErrConfiguration))
	assert.False(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "invalid configuration")
}

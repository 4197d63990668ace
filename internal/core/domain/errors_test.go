package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrKnowledgeUnavailable", ErrKnowledgeUnavailable},
		{"ErrMalformedSlice", ErrMalformedSlice},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrInvalidInput, ErrLLMUnavailable, ErrEmbeddingUnavailable,
		ErrKnowledgeUnavailable, ErrMalformedSlice, ErrUnsupportedFormat,
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestErrMalformedSlice_Wrapped(t *testing.T) {
	err := fmt.Errorf("medication %q: %w", "pain/2", ErrMalformedSlice)
	assert.True(t, errors.Is(err, ErrMalformedSlice))
	assert.Contains(t, err.Error(), "malformed knowledge slice")
}

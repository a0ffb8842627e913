package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsClientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"not found", fmt.Errorf("%w: note not found", ErrorNotFound), true},
		{"forbidden", ErrorForbidden, true},
		{"unauthorized", ErrorUnauthorized, true},
		{"invalid token", ErrInvalidToken, true},
		{"invariant", fmt.Errorf("wrapped: %w", ErrorInvariant), true},
		{"internal", ErrorInternal, false},
		{"plain", errors.New("db down"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsClientError(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"wrapped with context", fmt.Errorf("%w: note not found", ErrorNotFound), "note not found"},
		{"double wrapped", fmt.Errorf("lookup: %w", fmt.Errorf("%w: refresh token not found", ErrorNotFound)), "refresh token not found"},
		{"bare sentinel", ErrorForbidden, "forbidden"},
		{"unclassified", errors.New("boom"), "boom"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}

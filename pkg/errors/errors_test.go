package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("repo: %w", ErrUserNotFound)
	assert.Same(t, ErrUserNotFound, GetAppError(wrapped))

	plain := errors.New("boom")
	appErr := GetAppError(plain)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.ErrorIs(t, appErr, plain)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{ErrCodeInternal, 500},
		{ErrCodeStorageError, 500},
		{ErrCodeForbidden, 403},
		{ErrCodeBookNotFound, 404},
		{ErrCodeUnauthorized, 401},
		{ErrCodeInvalidScore, 400},
		{ErrCodeInvalidParams, 400},
		{0, 200},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.code), "code %d", tt.code)
	}
}

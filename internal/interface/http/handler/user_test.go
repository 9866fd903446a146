package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/books/3", "/books/3"},
		{"/profile?section=books", "/profile?section=books"},
		{"books/3", "/"},
		{"//evil.com", "/"},
		{"/\\evil.com", "/"},
		{"https://evil.com", "/"},
		{"javascript:alert(1)", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeNext(tt.next), "next=%q", tt.next)
	}
}

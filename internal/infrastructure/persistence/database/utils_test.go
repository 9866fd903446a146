package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%drag%", likePattern("Drag"))
	assert.Equal(t, "%100!%%", likePattern("100%"))
	assert.Equal(t, "%a!_b!!%", likePattern("a_b!"))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(errors.New("UNIQUE constraint failed: tags.name")))
	assert.True(t, isDuplicateError(errors.New("Error 1062: Duplicate entry 'x' for key 'name'")))
	assert.False(t, isDuplicateError(errors.New("connection refused")))
	assert.False(t, isDuplicateError(nil))
}

func TestUnicodeLower(t *testing.T) {
	assert.Equal(t, "émile", unicodeLower("ÉMILE"))
	assert.Equal(t, "straße", unicodeLower([]byte("STRAßE")))
	assert.Nil(t, unicodeLower([]byte(nil)))
	assert.Equal(t, int64(7), unicodeLower(int64(7)))
}

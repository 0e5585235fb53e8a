package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClasses(t *testing.T) {
	dayClosed := Invalid("day already closed")
	wrapped := fmt.Errorf("mark: %w", dayClosed)

	assert.True(t, errors.Is(wrapped, ErrInvalidRequest))
	assert.True(t, errors.Is(wrapped, dayClosed))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, "day already closed", dayClosed.Error())

	assert.True(t, errors.Is(Forbidden("x"), ErrForbidden))
	assert.True(t, errors.Is(NotFound("x"), ErrNotFound))
	assert.True(t, errors.Is(Unauthenticated("x"), ErrUnauthenticated))
}

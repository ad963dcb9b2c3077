package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindHelpers(t *testing.T) {
	err := fmt.Errorf("create course: %w", Invalid("course", CANNOT_ENROLL))

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.True(t, HasCode(err, CANNOT_ENROLL))
	assert.False(t, HasCode(err, CANNOT_JOIN_GROUP))

	e, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, e.Kind)
}

func TestError_Message(t *testing.T) {
	cause := errors.New("boom")
	err := NotFound("course").With("id", 7).With("a", "b").Wrap(cause)

	assert.Equal(t, "NOT_FOUND (course) a=b id=7: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWithArguments(t *testing.T) {
	err := Forbidden("lesson", NO_ACCESS_TO_LESSON).WithArguments("id")
	assert.Equal(t, []string{"id"}, err.Arguments)
	assert.True(t, IsForbidden(err))
	assert.Equal(t, "forbidden", err.Kind.String())
}

package dto

import (
	"testing"

	"bearinmind/backend/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLocale(t *testing.T) {
	for _, ok := range []string{"en", "pl", "en-US"} {
		assert.True(t, IsLocale(ok), ok)
	}
	for _, bad := range []string{"", "EN", "english", "en_US", "en-us"} {
		assert.False(t, IsLocale(bad), bad)
	}
}

func TestValidate_CreateCourse(t *testing.T) {
	valid := CreateCourse{Translations: LocaleFieldTexts{"en": {"name": "Go"}}}
	require.NoError(t, Validate(valid))

	empty := CreateCourse{}
	err := Validate(empty)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.REQUEST_ARGUMENT_INVALID))

	badLocale := CreateCourse{
		Translations: LocaleFieldTexts{"en": {"name": "Go"}},
		Lessons: []CreateCourseLesson{{
			Parts: []CreateCourseLessonPart{{Text: map[string]string{"english": "x"}}},
		}},
	}
	err = Validate(badLocale)
	require.Error(t, err)
	e, ok := apperrors.As(err)
	require.True(t, ok)
	require.Len(t, e.Arguments, 1)
	assert.Contains(t, e.Arguments[0], "lessons[0].parts[0].text")
}

func TestValidate_CreateUser(t *testing.T) {
	err := Validate(CreateUser{Email: "not-an-email", Password: "p", FirstName: "A", LastName: "B"})
	require.Error(t, err)
	e, _ := apperrors.As(err)
	assert.Equal(t, []string{"email"}, e.Arguments)
}

func TestValidate_BlankCredentials(t *testing.T) {
	tests := []struct {
		creds Credentials
		field string
	}{
		{Credentials{Username: " ", Password: "password"}, "username"},
		{Credentials{Username: "ada", Password: "\t"}, "password"},
	}
	for _, tt := range tests {
		err := Validate(tt.creds)
		require.Error(t, err)
		e, _ := apperrors.As(err)
		assert.Equal(t, []string{tt.field}, e.Arguments)
	}
}

func TestValidate_UpdateUserLocale(t *testing.T) {
	locale := "pl"
	require.NoError(t, Validate(UpdateUser{FirstName: "A", LastName: "B", Locale: &locale}))

	bad := "polish"
	assert.Error(t, Validate(UpdateUser{FirstName: "A", LastName: "B", Locale: &bad}))
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 0, 2, 5)
	assert.Equal(t, 3, p.TotalPages)

	mapped := Map(p, func(i int) string { return string(rune('a' + i)) })
	assert.Equal(t, []string{"b", "c"}, mapped.Content)
	assert.EqualValues(t, 5, mapped.TotalElements)

	empty := NewPage[int](nil, 0, 10, 0)
	assert.NotNil(t, empty.Content)
	assert.Zero(t, empty.TotalPages)
}

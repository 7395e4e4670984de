package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
)

type signup struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"contact_email" validate:"required,email"`
	Year     string `json:"graduation_year" validate:"required,max=4"`
	Note     string `json:"-" validate:"max=3"`
}

func TestStructValid(t *testing.T) {
	v := New()
	err := v.Struct(signup{Username: "alice.b+1@x", Email: "alice@example.com", Year: "2020"})
	assert.NoError(t, err)
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	v := New()
	err := v.Struct(signup{Username: "bad name!", Email: "nope", Year: "20201", Note: "long"})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))

	assert.Equal(t, []string{"Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."}, verr.Fields["username"])
	assert.Equal(t, []string{"Enter a valid email address."}, verr.Fields["contact_email"])
	assert.Equal(t, []string{"Ensure this field has no more than 4 characters."}, verr.Fields["graduation_year"])
	assert.Contains(t, verr.Fields, "Note")
}

func TestStructRequired(t *testing.T) {
	v := New()
	err := v.Struct(signup{})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	for _, field := range []string{"username", "contact_email", "graduation_year"} {
		assert.Equal(t, []string{"This field is required."}, verr.Fields[field], field)
	}
}

func TestUsernameLength(t *testing.T) {
	v := New()
	err := v.Struct(signup{Username: strings.Repeat("a", 151), Email: "a@b.co", Year: "1999"})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Ensure this field has no more than 150 characters."}, verr.Fields["username"])
}

func TestUsernameAcceptsUnicodeLetters(t *testing.T) {
	v := New()
	for _, name := range []string{"çağrı", "Łukasz_99", "名前", "josé.m@x"} {
		assert.NoError(t, v.Struct(signup{Username: name, Email: "a@b.co", Year: "1999"}), name)
	}

	err := v.Struct(signup{Username: "emoji😀", Email: "a@b.co", Year: "1999"})
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "username")
}

type credentials struct {
	Password string `json:"password" validate:"required,bcryptlen"`
}

func TestPasswordByteLength(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(credentials{Password: strings.Repeat("a", MaxPasswordBytes)}))

	err := v.Struct(credentials{Password: strings.Repeat("a", MaxPasswordBytes+1)})
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Ensure this field has no more than 72 bytes."}, verr.Fields["password"])

	// 40 runes, 80 bytes
	err = v.Struct(credentials{Password: strings.Repeat("ş", 40)})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "password")
}

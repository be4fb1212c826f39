package fcid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		u := uuid.New()
		ident := FromUUID(u)
		s := ident.String()
		assert.Len(t, s, 26)

		parsed, err := Parse(s)
		require.NoError(t, err)
		assert.True(t, parsed.Equal(ident))
		assert.Equal(t, u, parsed.UUID())
	}
}

func TestParseRejectsWrongLength(t *testing.T) {
	_, err := Parse("tooshort")
	require.Error(t, err)
}

func TestParseRejectsInvalidCharacter(t *testing.T) {
	_, err := Parse("u234567890123456789012345u")
	require.Error(t, err)
}

func TestParseAcceptsUppercase(t *testing.T) {
	ident := New()
	canonical := ident.String()

	// Swap a lowercase letter for its uppercase form; Parse ignores letter
	// case, so it must accept it and return the same identifier.
	aliased := []byte(canonical)
	for i, c := range aliased {
		if c >= 'a' && c <= 'z' {
			aliased[i] = c - 'a' + 'A'
			break
		}
	}
	parsed, err := Parse(string(aliased))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ident))
}

func TestNilIsZero(t *testing.T) {
	assert.True(t, Nil.IsZero())
	assert.False(t, New().IsZero())
}

func TestJSONRoundTrip(t *testing.T) {
	ident := New()
	data, err := ident.MarshalJSON()
	require.NoError(t, err)

	var out Ident
	require.NoError(t, out.UnmarshalJSON(data))
	assert.True(t, out.Equal(ident))
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustParse("not-a-valid-fcid")
	})
}

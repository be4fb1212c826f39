package catalogerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesKind(t *testing.T) {
	err := NotFound("release", "abc123")
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(err, KindEditConflict))
}

func TestIsMatchesWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("while doing something: %w", EditConflict("abc123"))
	assert.True(t, Is(wrapped, KindEditConflict))
}

func TestIsFalseForPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("boom"), KindNotFound))
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("work", "x").HTTPStatus())
	assert.Equal(t, http.StatusConflict, EditConflict("x").HTTPStatus())
	assert.Equal(t, http.StatusForbidden, InvalidCredentials("expired").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, InternalError("bug", nil).HTTPStatus())
}

func TestReportable(t *testing.T) {
	assert.True(t, DatabaseError(errors.New("conn reset")).Reportable())
	assert.True(t, InternalError("invariant violated", nil).Reportable())
	assert.False(t, NotFound("release", "x").Reportable())
	assert.False(t, EditConflict("x").Reportable())
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("underlying")
	err := DatabaseError(cause)
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestErrorMessageIncludesCauseWhenPresent(t *testing.T) {
	cause := errors.New("disk full")
	err := DatabaseError(cause)
	assert.Contains(t, err.Error(), "disk full")

	noCause := NotFound("release", "x")
	assert.NotContains(t, noCause.Error(), "<nil>")
}

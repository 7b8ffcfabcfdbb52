package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatus(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, http.StatusBadRequest, Validation(cause, "bad").Code)
	assert.Equal(t, http.StatusNotFound, NotFound(cause, "missing").Code)
	assert.Equal(t, http.StatusForbidden, Forbidden(cause, "nope").Code)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized(cause, "who").Code)
	assert.Equal(t, http.StatusInternalServerError, Internal(cause, "oops").Code)
}

func TestErrorStringIncludesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Internal(cause, "oops")

	assert.Equal(t, "oops: boom", err.Error())
	assert.Equal(t, "nope", Forbidden(nil, "nope").Error())
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	err := NotFound(cause, "missing")

	assert.ErrorIs(t, err, cause)
}

func TestCodeOfThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", Validation(nil, "bad input"))

	assert.Equal(t, http.StatusBadRequest, CodeOf(err))
	assert.Equal(t, "bad input", MessageOf(err))
}

func TestPlainErrorsDefaultToInternal(t *testing.T) {
	err := errors.New("unexpected")

	assert.Equal(t, http.StatusInternalServerError, CodeOf(err))
	assert.Equal(t, "internal server error", MessageOf(err))
}

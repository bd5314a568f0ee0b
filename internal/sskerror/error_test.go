package sskerror_test

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/stretchr/testify/assert"
)

func TestSSKError(t *testing.T) {
	err := sskerror.New("some message")

	assert.Equal(t, "some message", err.Error())
	assert.Equal(t, http.StatusInternalServerError, sskerror.StatusCode(err))
}

func TestStatusCode(t *testing.T) {
	err := sskerror.NotFound("List not found")
	assert.Equal(t, http.StatusNotFound, sskerror.StatusCode(err))
	assert.Equal(t, sskerror.TagNotFound, err.Tag())

	wrapped := errors.Wrap(sskerror.Forbidden("Not your list"), "could not add food")
	assert.Equal(t, http.StatusForbidden, sskerror.StatusCode(wrapped))

	assert.Equal(t, http.StatusInternalServerError, sskerror.StatusCode(errors.New("boom")))
}

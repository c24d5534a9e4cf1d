package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindAuthRequired, http.StatusUnauthorized},
		{KindAuthFailed, http.StatusUnauthorized},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindGone, http.StatusGone},
		{KindUpstream, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.kind))
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindUpstream, "could not send email", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Equal(t, "could not send email", MessageOf(err))
}

func TestUnclassifiedErrorIsInternal(t *testing.T) {
	err := fmt.Errorf("some db detail: %w", errors.New("oops"))
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	// raw error text must not leak to clients
	assert.NotContains(t, MessageOf(err), "db detail")
}

func TestWrappedKindSurvivesFurtherWrapping(t *testing.T) {
	inner := New(KindNotFound, "post not found")
	outer := fmt.Errorf("handling request: %w", inner)

	assert.Equal(t, KindNotFound, KindOf(outer))
	assert.Equal(t, "post not found", MessageOf(outer))
}

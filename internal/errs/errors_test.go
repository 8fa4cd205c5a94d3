package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"name required", ErrNameRequired, http.StatusBadRequest},
		{"wrapped confidence", fmt.Errorf("chunk: %w", ErrInvalidConfidence), http.StatusBadRequest},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"bad token", fmt.Errorf("parse: %w", ErrInvalidToken), http.StatusUnauthorized},
		{"whiteboard missing", ErrWhiteboardNotFound, http.StatusNotFound},
		{"chunk missing", fmt.Errorf("delete: %w", ErrWhiteboardOrChunkNotFound), http.StatusNotFound},
		{"storage", ErrStorageUnavailable, http.StatusInternalServerError},
		{"corrupt", ErrCorruptState, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusCode(tc.err))
		})
	}
}

func TestServerCause(t *testing.T) {
	export := fmt.Errorf("%w: %w", ErrExport, fmt.Errorf("%w: open /srv/data/db.json: permission denied", ErrStorageUnavailable))
	assert.Equal(t, ErrExport, ServerCause(export))
	assert.Equal(t, ErrCorruptState, ServerCause(fmt.Errorf("%w: unexpected EOF", ErrCorruptState)))
	assert.Nil(t, ServerCause(errors.New("pq: relation \"chunks\" does not exist")))
	assert.Nil(t, ServerCause(ErrNameRequired))
}

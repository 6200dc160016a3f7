package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter(t *testing.T) {
	t.Run("write implies 200", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		n, err := w.Write([]byte("hello"))

		assert.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, http.StatusOK, w.status)
		assert.Equal(t, 5, w.size)
	})

	t.Run("second WriteHeader is ignored", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		w.WriteHeader(http.StatusAccepted)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("a"))
		_, _ = w.Write([]byte("bc"))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, http.StatusAccepted, w.status)
		assert.Equal(t, 3, w.size)
	})

	t.Run("unwrap", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		assert.Same(t, rec, w.Unwrap())
	})
}

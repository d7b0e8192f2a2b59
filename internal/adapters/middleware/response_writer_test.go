package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseRecorder_DefaultsToOK(t *testing.T) {
	t.Parallel()

	recorder := NewResponseRecorder(httptest.NewRecorder())

	_, _ = recorder.Write([]byte("implicit 200"))

	assert.Equal(t, http.StatusOK, recorder.StatusCode())
	assert.Equal(t, int64(12), recorder.BytesWritten())
}

func TestResponseRecorder_CapturesExplicitStatus(t *testing.T) {
	t.Parallel()

	underlying := httptest.NewRecorder()
	recorder := NewResponseRecorder(underlying)

	recorder.WriteHeader(http.StatusTooManyRequests)
	_, _ = recorder.Write([]byte("slow down"))

	assert.Equal(t, http.StatusTooManyRequests, recorder.StatusCode())
	assert.Equal(t, http.StatusTooManyRequests, underlying.Code)
	assert.Equal(t, int64(9), recorder.BytesWritten())
}

func TestResponseRecorder_AccumulatesWrites(t *testing.T) {
	t.Parallel()

	recorder := NewResponseRecorder(httptest.NewRecorder())

	_, _ = recorder.Write([]byte("first"))
	_, _ = recorder.Write([]byte("second"))

	assert.Equal(t, int64(11), recorder.BytesWritten())
}

func TestResponseRecorder_HijackUnsupported(t *testing.T) {
	t.Parallel()

	recorder := NewResponseRecorder(httptest.NewRecorder())

	_, _, err := recorder.Hijack()

	assert.ErrorIs(t, err, http.ErrNotSupported)
}

func TestResponseRecorder_Unwrap(t *testing.T) {
	t.Parallel()

	underlying := httptest.NewRecorder()
	recorder := NewResponseRecorder(underlying)

	assert.Same(t, http.ResponseWriter(underlying), recorder.Unwrap())
}

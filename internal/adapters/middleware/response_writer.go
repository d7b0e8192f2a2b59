package middleware

import (
	"bufio"
	"net"
	"net/http"
)

// ResponseRecorder wraps a ResponseWriter to capture the status code and
// body size after the handler runs, passing Flush and Hijack through to
// the underlying writer when it supports them.
type ResponseRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
	flusher      http.Flusher
	hijacker     http.Hijacker
}

func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	recorder := &ResponseRecorder{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}

	if flusher, ok := w.(http.Flusher); ok {
		recorder.flusher = flusher
	}

	if hijacker, ok := w.(http.Hijacker); ok {
		recorder.hijacker = hijacker
	}

	return recorder
}

func (r *ResponseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *ResponseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytesWritten += int64(n)

	return n, err
}

func (r *ResponseRecorder) Flush() {
	if r.flusher != nil {
		r.flusher.Flush()
	}
}

func (r *ResponseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if r.hijacker != nil {
		return r.hijacker.Hijack()
	}

	return nil, nil, http.ErrNotSupported
}

func (r *ResponseRecorder) StatusCode() int {
	return r.statusCode
}

func (r *ResponseRecorder) BytesWritten() int64 {
	return r.bytesWritten
}

func (r *ResponseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

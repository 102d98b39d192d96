package thttp

import "net/http"

type statusCapturer struct {
	http.ResponseWriter

	status *int
}

// CaptureStatus wraps w so the status code written by the handler is stored in status.
func CaptureStatus(w http.ResponseWriter, status *int) http.ResponseWriter {
	*status = http.StatusOK
	return &statusCapturer{ResponseWriter: w, status: status}
}

func (w *statusCapturer) WriteHeader(status int) {
	*w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusCapturer) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

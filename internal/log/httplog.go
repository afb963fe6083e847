package log

import "time"

// HTTPRequest is one served request
type HTTPRequest struct {
	RequestID  string
	Method     string
	Path       string
	Status     int
	Duration   time.Duration
	Size       int
	RemoteAddr string
	Err        error
}

// LogHTTPRequest writes a request line at info level, or error level for 5xx responses
func LogHTTPRequest(r HTTPRequest) {
	fields := []interface{}{
		"request_id", r.RequestID,
		"method", r.Method,
		"path", r.Path,
		"status", r.Status,
		"duration_ms", r.Duration.Milliseconds(),
		"size", r.Size,
		"remote_addr", r.RemoteAddr,
	}
	if r.Err != nil {
		fields = append(fields, "error", r.Err.Error())
	}

	if r.Status >= 500 {
		Errorw("http request", fields...)
		return
	}
	Infow("http request", fields...)
}

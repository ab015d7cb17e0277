package logger

import "time"

// Field keys shared by the client, the twin and the CLI.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields builds a field map from alternating key-value pairs. Non-string
// keys and a trailing key without a value are dropped.
//
//	log.Info("chat started", logger.Fields("chat_id", id, "thread_id", tid))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields is Fields plus the error message under FieldError.
func ErrorFields(err error, kvs ...interface{}) map[string]interface{} {
	m := Fields(kvs...)
	if err != nil {
		m[FieldError] = err.Error()
	}
	return m
}

// HTTPFields describes one HTTP exchange, sent or served.
func HTTPFields(method, path string, status int, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldMethod:   method,
		FieldPath:     path,
		FieldStatus:   status,
		FieldDuration: d.Milliseconds(),
	}
}

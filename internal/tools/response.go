package tools

import (
	"fmt"
	"time"
)

// Response is the standardized envelope every tool operation returns.
// Callers must check Success before reading Data; a failed response
// always carries a human-readable Error and empty Data.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Error     *string     `json:"error"`
	Timestamp string      `json:"timestamp"`
}

func ok(data interface{}) Response {
	return Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func fail(format string, args ...interface{}) Response {
	msg := fmt.Sprintf(format, args...)
	return Response{
		Success:   false,
		Data:      map[string]interface{}{},
		Error:     &msg,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation represents bad caller input rejected before data access
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents an unknown product or an empty query window
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeNavigation represents a page that could not be loaded at all
	ErrorTypeNavigation ErrorType = "navigation"
	// ErrorTypeExtraction represents a field that could not be located on a loaded page
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeStorage represents persistence failures
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a pipeline-specific error carrying its product context
type ScrapeError struct {
	Type      ErrorType
	ProductID string
	Message   string
	Err       error
	Time      time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.ProductID, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.ProductID, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether the error terminates the scrape of this
// product. Extraction misses never do; they degrade to null fields.
func (e *ScrapeError) IsFatal() bool {
	switch e.Type {
	case ErrorTypeNavigation:
		return true
	case ErrorTypeExtraction:
		return false
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, productID, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:      errType,
		ProductID: productID,
		Message:   message,
		Err:       err,
		Time:      time.Now(),
	}
}

// NewValidation creates a new validation error
func NewValidation(message string) *ScrapeError {
	return New(ErrorTypeValidation, "", message, nil)
}

// NewNotFound creates a new not-found error
func NewNotFound(productID, message string) *ScrapeError {
	return New(ErrorTypeNotFound, productID, message, nil)
}

// NewNavigation creates a new navigation error
func NewNavigation(productID, message string, err error) *ScrapeError {
	return New(ErrorTypeNavigation, productID, message, err)
}

// NewExtraction creates a new extraction error
func NewExtraction(productID, message string) *ScrapeError {
	return New(ErrorTypeExtraction, productID, message, nil)
}

// NewStorage creates a new storage error
func NewStorage(productID, message string, err error) *ScrapeError {
	return New(ErrorTypeStorage, productID, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(productID string, duration time.Duration) *ScrapeError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, productID, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// TypeOf returns the ErrorType of err, or an empty string when err is
// not a ScrapeError
func TypeOf(err error) ErrorType {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Type
	}
	return ""
}

// IsNotFound reports whether err is a not-found ScrapeError
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsValidation reports whether err is a validation ScrapeError
func IsValidation(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

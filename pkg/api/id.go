package api

import (
	"regexp"

	"github.com/google/uuid"
)

const requestIDPrefix = "req_"

var requestIDPattern = regexp.MustCompile(`^req_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// NewRequestID generates a request ID with the "req_" prefix followed by a
// random UUID.
func NewRequestID() string {
	return requestIDPrefix + uuid.NewString()
}

// ValidateRequestID checks whether the given string is a valid request ID.
func ValidateRequestID(id string) bool {
	return requestIDPattern.MatchString(id)
}

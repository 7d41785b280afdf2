package generation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a generation failure at the adapter boundary, so callers
// never have to parse human-readable error text themselves.
type Kind int

const (
	KindUnknown Kind = iota
	// KindUnauthorized covers invalid or missing credentials.
	KindUnauthorized
	// KindTransport covers network-level failures before an HTTP status exists.
	KindTransport
	// KindService covers non-200 service responses and malformed bodies.
	KindService
	// KindRateLimited covers quota exhaustion.
	KindRateLimited
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("generation service error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("generation error: %s", e.Message)
}

// KindOf extracts the classification from any error returned by this package.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

func classifyStatus(status int, body []byte) *Error {
	msg := string(body)
	kind := KindService
	switch {
	case status == 401 || status == 403:
		kind = KindUnauthorized
	case status == 429:
		kind = KindRateLimited
	case strings.Contains(strings.ToLower(msg), "api key not valid"):
		// Gemini reports bad keys as 400 with this message in the body.
		kind = KindUnauthorized
	}
	return &Error{Kind: kind, Status: status, Message: msg}
}

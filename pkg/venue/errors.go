package venue

import (
	"fmt"
	"strings"
)

// Error represents a GraphQL-level error response from the events API.
type Error struct {
	Messages []string // Error messages from the endpoint
}

// Error returns the combined error message.
func (e *Error) Error() string {
	return fmt.Sprintf("venue: graphql errors: %s", strings.Join(e.Messages, "; "))
}

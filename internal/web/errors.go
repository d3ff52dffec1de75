package web

import "strings"

// sanitizeErrorMessage strips internal detail from error text before it
// reaches a client. Connection strings, file paths and driver noise stay
// in the server logs only.
func sanitizeErrorMessage(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "sqlstate"),
		strings.Contains(lower, "pgx"),
		strings.Contains(lower, "connection refused"):
		return "a database error occurred"
	case strings.Contains(lower, "no such file"),
		strings.Contains(lower, "permission denied"):
		return "an internal error occurred"
	}

	return message
}

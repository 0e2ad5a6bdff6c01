package db

import "strings"

// IsUniqueViolation reports whether err is a unique constraint violation.
// Postgres names the violated constraint in the message; SQLite, which backs
// the test databases, reports the indexed columns instead, so a generic
// unique-violation marker also matches.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

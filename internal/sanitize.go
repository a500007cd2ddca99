package internal

import "strings"

var sanitizeReplacer = strings.NewReplacer("\n", "", "\r", "", "\t", " ")

// SanitizeString removes newlines and tabs from a string, to prevent log injection
func SanitizeString(s string) string {
	return sanitizeReplacer.Replace(s)
}

package utils

import "strings"

// NormalizeEmail lower-cases and trims an address before it is used as a
// lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimFunc(email, IsFormSpace))
}

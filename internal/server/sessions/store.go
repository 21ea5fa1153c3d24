// Package sessions keeps the live session token for each account identity.
// Tokens are opaque values with an absolute expiry; an identity has at most
// one live token at a time.
package sessions

// Store issues and validates session tokens.
type Store interface {
	// Issue creates a fresh token for the email, replacing any prior one in
	// a single atomic step. The previous token stops validating immediately.
	Issue(email string) string

	// Validate reports whether token is the current live token for the
	// email. Expiry is checked here, on read; there is no background sweep.
	Validate(email string, token string) bool
}

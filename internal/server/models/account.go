// Package models holds the persistent entities of the account service.
package models

import "time"

// Account is one registered user. VerificationCode is only set while the
// account is unverified and a code has been issued; verification clears it.
type Account struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	Verified         bool
	VerificationCode string
	CreatedAt        time.Time
}

// Credentials is the slice of an account that login needs: the stored hash
// and whether the email has been confirmed.
type Credentials struct {
	PasswordHash string
	Verified     bool
}

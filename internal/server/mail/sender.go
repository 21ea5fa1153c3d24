// Package mail delivers verification codes to account email addresses.
package mail

import "context"

// Sender is the outbound email collaborator. It is called exactly once per
// successful registration with the freshly issued verification code.
type Sender interface {
	Send(ctx context.Context, email string, verificationCode string) error
}

package accounts

import (
	"context"

	"github.com/akimovdo/accountd/internal/server/models"
)

// Repository is the persistence contract for accounts.
type Repository interface {
	// Create inserts a new unverified account. Registering an email that
	// already has a row fails with common.ErrAccountExists.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// SetPendingCode stores (or replaces) the pending verification code of
	// the account. Returns common.ErrorNotFound for an unknown email.
	SetPendingCode(ctx context.Context, email string, code string) error

	// ConsumeCodeIfMatches atomically compares the stored pending code with
	// the supplied one; on a match it marks the account verified, clears the
	// code and returns true. Otherwise it returns false without mutation.
	ConsumeCodeIfMatches(ctx context.Context, email string, code string) (bool, error)

	// GetCredentials loads what login needs for the given email. Returns
	// common.ErrorNotFound when the account does not exist.
	GetCredentials(ctx context.Context, email string) (*models.Credentials, error)
}

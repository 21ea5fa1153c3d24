// Package verification issues and resolves one-time email verification codes.
// The codes themselves live in the accounts table; this package owns their
// generation and the consume-once contract.
package verification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akimovdo/accountd/internal/dbx"
	"github.com/akimovdo/accountd/internal/server/repositories/repomanager"
)

type Registry struct {
	rm repomanager.RepositoryManager
}

func NewRegistry(rm repomanager.RepositoryManager) *Registry {
	return &Registry{rm: rm}
}

// Issue generates a fresh opaque code for the email, persists it as the
// pending code and returns it for delivery. Issuing again before the previous
// code is consumed overwrites it; the old code becomes unresolvable.
func (r *Registry) Issue(ctx context.Context, db dbx.DBTX, email string) (string, error) {
	code := uuid.NewString()

	repo := r.rm.Accounts(db)
	if err := repo.SetPendingCode(ctx, email, code); err != nil {
		return "", fmt.Errorf("error storing verification code: %w", err)
	}

	return code, nil
}

// Resolve consumes the pending code if it matches. True flips the account to
// verified; false means wrong code, already consumed, or unknown email.
func (r *Registry) Resolve(ctx context.Context, db dbx.DBTX, email string, code string) (bool, error) {
	repo := r.rm.Accounts(db)

	ok, err := repo.ConsumeCodeIfMatches(ctx, email, code)
	if err != nil {
		return false, fmt.Errorf("error resolving verification code: %w", err)
	}

	return ok, nil
}

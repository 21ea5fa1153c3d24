// Package services contains server-side business logic. This file implements
// AuthService, which drives the register → verify → login progression of an
// account and owns session issuance and validation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/akimovdo/accountd/internal/common"
	"github.com/akimovdo/accountd/internal/cryptox"
	"github.com/akimovdo/accountd/internal/dbx"
	"github.com/akimovdo/accountd/internal/logging"
	"github.com/akimovdo/accountd/internal/server/mail"
	"github.com/akimovdo/accountd/internal/server/models"
	"github.com/akimovdo/accountd/internal/server/repositories/repomanager"
	"github.com/akimovdo/accountd/internal/server/sessions"
	"github.com/akimovdo/accountd/internal/server/verification"
)

const (
	minNameLength     = 3
	maxNameLength     = 100
	minPasswordLength = 8
)

// emailPattern is an RFC-5322-lite check: printable local part, exactly one
// "@", and a domain with at least one dot-separated label.
var emailPattern = regexp.MustCompile("^[A-Za-z0-9_!#$%&'*+/=?`{|}~^.-]+@[A-Za-z0-9-]+(\\.[A-Za-z0-9-]+)+$")

// AuthService is the single entry point the request layer calls. It
// orchestrates the password codec, the accounts repository, the verification
// registry, and the session store.
type AuthService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	registry *verification.Registry
	sessions sessions.Store
	mailer   mail.Sender
	logger   logging.Logger
}

// NewAuthService constructs an AuthService from its collaborators. Nothing is
// global; tests substitute fakes through the same constructor.
func NewAuthService(db *sql.DB, rm repomanager.RepositoryManager, registry *verification.Registry,
	store sessions.Store, mailer mail.Sender, logger logging.Logger) *AuthService {
	return &AuthService{
		db:       db,
		rm:       rm,
		registry: registry,
		sessions: store,
		mailer:   mailer,
		logger:   logger.With("module", "auth"),
	}
}

// Register validates the input, creates an unverified account and issues a
// verification code, then hands the code to the email collaborator.
//
// Validation failures return InvalidInputError naming the offending field and
// mutate nothing. A duplicate identity returns ErrAccountExists. The account
// row and its pending code are written in one transaction. A delivery failure
// is reported as DeliveryError but does not roll back the created account.
func (s *AuthService) Register(ctx context.Context, name string, email string, password string) error {

	if err := validateRegistration(name, email, password); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return common.ErrorInternal
	}

	var code string

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Accounts(tx)

		account := &models.Account{Name: name, Email: email, PasswordHash: hash}
		if _, err := repo.Create(ctx, account); err != nil {
			return err
		}

		var issueErr error
		code, issueErr = s.registry.Issue(ctx, tx, email)
		return issueErr
	})

	if err != nil {
		if errors.Is(err, common.ErrAccountExists) {
			return common.ErrAccountExists
		}
		return fmt.Errorf("error creating account: %w", err)
	}

	s.logger.Info(ctx, "account registered", "email", email)

	if err := s.mailer.Send(ctx, email, code); err != nil {
		// the account exists by now, so only the delivery is reported failed
		s.logger.Error(ctx, "verification email not delivered", "email", email, "error", err.Error())
		return &common.DeliveryError{Err: err}
	}

	return nil
}

// VerifyEmail resolves the supplied code against the account's pending one.
// False is a normal negative outcome (wrong code, already verified, or
// unknown email), not an error.
func (s *AuthService) VerifyEmail(ctx context.Context, email string, code string) (bool, error) {
	ok, err := s.registry.Resolve(ctx, s.db, email, code)
	if err != nil {
		return false, err
	}

	if ok {
		s.logger.Info(ctx, "email verified", "email", email)
	}

	return ok, nil
}

// Login checks the credentials and, on success, issues a session token that
// replaces any prior one for this email. Unknown identity, wrong password,
// and an unverified account all fail with ErrInvalidCredentials so the caller
// cannot probe account state.
func (s *AuthService) Login(ctx context.Context, email string, password string) (string, error) {

	repo := s.rm.Accounts(s.db)

	creds, err := repo.GetCredentials(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !cryptox.CheckPassword(password, creds.PasswordHash) || !creds.Verified {
		return "", common.ErrInvalidCredentials
	}

	token := s.sessions.Issue(email)
	s.logger.Info(ctx, "login", "email", email)

	return token, nil
}

// CheckSession reports whether token is the live session token for the email.
// It mutates nothing; expired entries are simply reported invalid.
func (s *AuthService) CheckSession(email string, token string) bool {
	return s.sessions.Validate(email, token)
}

func validateRegistration(name string, email string, password string) error {
	if l := utf8.RuneCountInString(name); l < minNameLength || l > maxNameLength {
		return common.NewInvalidInputError("name")
	}
	if !emailPattern.MatchString(email) {
		return common.NewInvalidInputError("email")
	}
	if len(password) < minPasswordLength {
		return common.NewInvalidInputError("password")
	}
	return nil
}

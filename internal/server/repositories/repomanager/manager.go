// Package repomanager wires repositories to database handles so services can
// run the same repository code on a plain connection or inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/akimovdo/accountd/internal/dbx"
	"github.com/akimovdo/accountd/internal/server/repositories/accounts"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}

package unitofwork

import "context"

// UnitOfWork scopes repository access to one database transaction.
// Begin opens the transaction and returns a factory bound to it;
// Commit or Rollback finishes it.
type UnitOfWork interface {
	Begin(ctx context.Context) (RepositoryFactory, error)
	Commit() error
	Rollback() error

	// Do runs fn inside a transaction, committing on nil and rolling
	// back on error or panic.
	Do(ctx context.Context, fn func(factory RepositoryFactory) error) error
}

// UnitOfWorkFactory creates a fresh UnitOfWork per use. A UnitOfWork
// is single-shot and must not be reused after Commit or Rollback.
type UnitOfWorkFactory interface {
	New() UnitOfWork
	// Repositories returns a factory bound to the base connection,
	// for reads that need no transaction.
	Repositories() RepositoryFactory
}

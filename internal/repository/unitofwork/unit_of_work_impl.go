package unitofwork

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNoTransaction = errors.New("unit of work has no open transaction")

type gormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

type gormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewUnitOfWorkFactory(db *gorm.DB) UnitOfWorkFactory {
	return &gormUnitOfWorkFactory{db: db}
}

func (f *gormUnitOfWorkFactory) New() UnitOfWork {
	return &gormUnitOfWork{db: f.db}
}

func (f *gormUnitOfWorkFactory) Repositories() RepositoryFactory {
	return NewRepositoryFactory(f.db)
}

func (u *gormUnitOfWork) Begin(ctx context.Context) (RepositoryFactory, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	u.tx = tx
	return NewRepositoryFactory(tx), nil
}

func (u *gormUnitOfWork) Commit() error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *gormUnitOfWork) Rollback() error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(factory RepositoryFactory) error) error {
	factory, err := u.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = u.Rollback()
			panic(r)
		}
	}()

	if err := fn(factory); err != nil {
		_ = u.Rollback()
		return err
	}
	return u.Commit()
}

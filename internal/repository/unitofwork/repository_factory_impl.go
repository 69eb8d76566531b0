package unitofwork

import (
	"gorm.io/gorm"

	"clipnote-be/internal/repository/contract"
	"clipnote-be/internal/repository/implementation"
)

type repositoryFactory struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &repositoryFactory{db: db}
}

func (f *repositoryFactory) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(f.db)
}

func (f *repositoryFactory) NoteRepository() contract.NoteRepository {
	return implementation.NewNoteRepository(f.db)
}

func (f *repositoryFactory) ClipRepository() contract.ClipRepository {
	return implementation.NewClipRepository(f.db)
}

func (f *repositoryFactory) ActivityRepository() contract.ActivityRepository {
	return implementation.NewActivityRepository(f.db)
}

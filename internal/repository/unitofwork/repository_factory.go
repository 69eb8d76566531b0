package unitofwork

import "clipnote-be/internal/repository/contract"

// RepositoryFactory hands out repositories bound to a single gorm
// session, transactional or not.
type RepositoryFactory interface {
	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	ClipRepository() contract.ClipRepository
	ActivityRepository() contract.ActivityRepository
}

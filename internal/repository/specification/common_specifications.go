package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByIDSpecification struct {
	ID uuid.UUID
}

func (s ByIDSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

func ByID(id uuid.UUID) Specification {
	return ByIDSpecification{ID: id}
}

type OwnedBySpecification struct {
	UserID uuid.UUID
}

func (s OwnedBySpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

func OwnedBy(userID uuid.UUID) Specification {
	return OwnedBySpecification{UserID: userID}
}

type ByEmailSpecification struct {
	Email string
}

func (s ByEmailSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

func ByEmail(email string) Specification {
	return ByEmailSpecification{Email: email}
}

type ByTokenHashSpecification struct {
	TokenHash string
}

func (s ByTokenHashSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token_hash = ?", s.TokenHash)
}

func ByTokenHash(hash string) Specification {
	return ByTokenHashSpecification{TokenHash: hash}
}

type ByProviderSpecification struct {
	ProviderName   string
	ProviderUserId string
}

func (s ByProviderSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider_name = ? AND provider_user_id = ?", s.ProviderName, s.ProviderUserId)
}

func ByProvider(name, providerUserID string) Specification {
	return ByProviderSpecification{ProviderName: name, ProviderUserId: providerUserID}
}

type OrderBySpecification struct {
	Field string
	Desc  bool
}

func (s OrderBySpecification) Apply(db *gorm.DB) *gorm.DB {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return db.Order(s.Field + " " + dir)
}

func OrderBy(field string, desc bool) Specification {
	return OrderBySpecification{Field: field, Desc: desc}
}

// NewestFirst orders by creation time descending with id as a
// tie-breaker so the ordering is stable.
func NewestFirst() Specification {
	return newestFirstSpecification{}
}

type newestFirstSpecification struct{}

func (newestFirstSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

type PaginationSpecification struct {
	Limit  int
	Offset int
}

func (s PaginationSpecification) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	if s.Offset > 0 {
		db = db.Offset(s.Offset)
	}
	return db
}

func Paginate(limit, offset int) Specification {
	return PaginationSpecification{Limit: limit, Offset: offset}
}

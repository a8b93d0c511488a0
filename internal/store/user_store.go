package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/talentgate/recruitment-api/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already taken")
)

// UserStore is the credential store behind the auth service. Uniqueness
// of username and email is enforced by the storage layer, not by
// check-then-insert.
type UserStore interface {
	// FindByUsernameOrEmail tries the username column first, then email,
	// so the authoritative row is deterministic even if one user's
	// username equals another user's email.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	var u models.User

	err := s.db.WithContext(ctx).Where("username = ?", identifier).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Emails are stored lowercased at registration, so the email branch
	// must fold the identifier the same way.
	err = s.db.WithContext(ctx).Where("email = ?", strings.ToLower(identifier)).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return nil, err
}

func (s *GormUserStore) Create(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentgate/recruitment-api/internal/models"
	"github.com/talentgate/recruitment-api/internal/session"
	"github.com/talentgate/recruitment-api/internal/store"
)

var (
	// ErrInvalidCredentials covers unknown identifier, wrong password and
	// deactivated accounts alike, so callers cannot enumerate users.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrDuplicateUser deliberately does not say which column collided.
	ErrDuplicateUser = errors.New("username or email already exists")
)

// ValidationError carries the exact message shown to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const (
	MsgRequiredFields = "Please fill in all required fields"
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgShortPassword  = "Password must be at least 6 characters long"
	MsgInvalidRole    = "Invalid role"
)

// Service verifies credentials, issues and tears down sessions, and
// answers role checks.
type Service struct {
	users    store.UserStore
	sessions session.Store
	cost     int
	ttl      time.Duration
	validate *validator.Validate
	log      zerolog.Logger
}

func NewService(users store.UserStore, sessions session.Store, bcryptCost int, sessionTTL time.Duration, log zerolog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &Service{
		users:    users,
		sessions: sessions,
		cost:     bcryptCost,
		ttl:      sessionTTL,
		validate: validator.New(),
		log:      log,
	}
}

// Login looks the user up by username or email, verifies the password
// and opens a session. Every failure mode surfaces as
// ErrInvalidCredentials unless the store itself is unavailable.
func (s *Service) Login(ctx context.Context, identifier, password string) (*session.Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.log.Error().Err(err).Msg("user lookup failed")
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.StartSession(ctx, u)
}

// StartSession opens a session for an already-verified user. Login uses
// it after the password check; the Google callback uses it directly.
func (s *Service) StartSession(ctx context.Context, u *models.User) (*session.Session, error) {
	now := time.Now()
	sess := &session.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		FullName:  u.FullName(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		s.log.Error().Err(err).Msg("session create failed")
		return nil, err
	}
	return sess, nil
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string // defaults to candidate
	Phone     string // optional
}

// Register validates the input, hashes the password and inserts the
// user. Uniqueness races are resolved by the store's unique indexes,
// never by a pre-read.
func (s *Service) Register(ctx context.Context, in RegisterInput) (uuid.UUID, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	phone := strings.TrimSpace(in.Phone)

	if username == "" || email == "" || in.Password == "" || firstName == "" || lastName == "" {
		return uuid.Nil, &ValidationError{Message: MsgRequiredFields}
	}
	if s.validate.Var(email, "email") != nil {
		return uuid.Nil, &ValidationError{Message: MsgInvalidEmail}
	}
	if len(in.Password) < 6 {
		return uuid.Nil, &ValidationError{Message: MsgShortPassword}
	}

	role := models.Role(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RoleCandidate
	}
	if !models.ValidRole(role) {
		return uuid.Nil, &ValidationError{Message: MsgInvalidRole}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return uuid.Nil, err
	}

	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			return uuid.Nil, ErrDuplicateUser
		}
		s.log.Error().Err(err).Msg("user insert failed")
		return uuid.Nil, err
	}
	return u.ID, nil
}

// Logout destroys the session. Calling it again for the same id is a
// no-op.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.log.Error().Err(err).Msg("session delete failed")
		return err
	}
	return nil
}

func (s *Service) IsAuthenticated(sess *session.Session) bool {
	return sess != nil && sess.UserID != uuid.Nil
}

// HasRole is an exact match; there is no hierarchy between roles.
func (s *Service) HasRole(sess *session.Session, role string) bool {
	return sess != nil && sess.Role == role
}

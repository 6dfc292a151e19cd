package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/db"
	"github.com/taskhive/taskhive/internal/models"
)

// UserStore is the slice of the persistence layer the auth service needs.
// Both db.Mongo and db.Memory satisfy it.
type UserStore interface {
	InsertUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error

	AddToken(ctx context.Context, userID, token string) error
	RemoveToken(ctx context.Context, userID, token string) error
	ClearTokens(ctx context.Context, userID string) error
}

// allowedUpdateFields is the profile update allow-list. Anything outside
// it is rejected before any field is applied.
var allowedUpdateFields = map[string]bool{
	"name":     true,
	"email":    true,
	"password": true,
	"age":      true,
}

var validate = validator.New()

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Age      int
}

// Session is a resolved login: the user plus the raw token string, which
// handlers need to revoke exactly this session on logout.
type Session struct {
	User  *models.User
	Token string
}

// Service implements the account and session-token lifecycle on top of a
// user store and a token issuer.
type Service struct {
	store  UserStore
	issuer *TokenIssuer
}

func NewService(store UserStore, issuer *TokenIssuer) *Service {
	return &Service{store: store, issuer: issuer}
}

// Register validates the signup payload, hashes the password and persists
// the new user with a first session token already registered.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	var bad []string
	if strings.TrimSpace(input.Name) == "" {
		bad = append(bad, "name")
	}

	email := NormalizeEmail(input.Email)
	if validate.Var(email, "required,email") != nil {
		bad = append(bad, "email")
	}
	if !validPassword(input.Password) {
		bad = append(bad, "password")
	}
	if input.Age < 0 {
		bad = append(bad, "age")
	}
	if len(bad) > 0 {
		return nil, newValidationError(bad...)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, newValidationError("password")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Age:          input.Age,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.InsertUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return nil, newValidationError("email")
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	return s.startSession(ctx, user)
}

// Login resolves the credentials to a user and opens a new session.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, user)
}

// FindByCredentials looks the user up by normalized email and verifies the
// password against the stored hash.
func (s *Service) FindByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find by credentials: %w", err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) startSession(ctx context.Context, user *models.User) (*Session, error) {
	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if err := s.store.AddToken(ctx, user.ID, token); err != nil {
		return nil, fmt.Errorf("register token: %w", err)
	}
	user.AddToken(token)

	return &Session{User: user, Token: token}, nil
}

// Authenticate is the auth gate: a cryptographic check of the presented
// token followed by a registry membership check against the claimed user.
// A token that verifies but was removed from the registry is revoked.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !user.HasToken(token) {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// Logout revokes exactly the presented token; other sessions stay valid.
func (s *Service) Logout(ctx context.Context, user *models.User, token string) error {
	if err := s.store.RemoveToken(ctx, user.ID, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	user.RemoveToken(token)
	return nil
}

// LogoutAll revokes every session the user has.
func (s *Service) LogoutAll(ctx context.Context, user *models.User) error {
	if err := s.store.ClearTokens(ctx, user.ID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}
	user.ClearTokens()
	return nil
}

// UpdateProfile applies a partial update. Field names outside the
// allow-list reject the whole request before anything is mutated; a
// password change is re-hashed before persisting.
func (s *Service) UpdateProfile(ctx context.Context, user *models.User, updates map[string]any) error {
	var disallowed []string
	for field := range updates {
		if !allowedUpdateFields[field] {
			disallowed = append(disallowed, field)
		}
	}
	if len(disallowed) > 0 {
		return newValidationError(disallowed...)
	}

	updated := user.Clone()
	var bad []string

	if raw, ok := updates["name"]; ok {
		name, ok := raw.(string)
		if !ok || strings.TrimSpace(name) == "" {
			bad = append(bad, "name")
		} else {
			updated.Name = strings.TrimSpace(name)
		}
	}

	if raw, ok := updates["email"]; ok {
		email, isString := raw.(string)
		email = NormalizeEmail(email)
		if !isString || validate.Var(email, "required,email") != nil {
			bad = append(bad, "email")
		} else {
			updated.Email = email
		}
	}

	if raw, ok := updates["age"]; ok {
		age, ok := toInt(raw)
		if !ok || age < 0 {
			bad = append(bad, "age")
		} else {
			updated.Age = age
		}
	}

	if raw, ok := updates["password"]; ok {
		password, isString := raw.(string)
		if !isString || !validPassword(password) {
			bad = append(bad, "password")
		} else {
			hash, err := HashPassword(password)
			if err != nil {
				bad = append(bad, "password")
			} else {
				updated.PasswordHash = hash
			}
		}
	}

	if len(bad) > 0 {
		return newValidationError(bad...)
	}

	if err := s.store.SaveUser(ctx, updated); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return newValidationError("email")
		}
		return fmt.Errorf("update profile: %w", err)
	}

	*user = *updated
	return nil
}

// Delete removes the account and everything it owns.
func (s *Service) Delete(ctx context.Context, user *models.User) error {
	if err := s.store.DeleteUser(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address; stored emails are
// always in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// toInt accepts the numeric shapes a decoded JSON body can produce.
func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

package auth

import (
	"context"
	"errors"

	"github.com/firmdex/firmdex-api/internal/models"
	"github.com/firmdex/firmdex-api/internal/store"
)

var (
	// ErrEmailTaken signals a registration against an existing email.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// response never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Session is the login result handed back to the client.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// Service implements register/login/verify over the user store.
type Service struct {
	users  store.Store[models.User]
	secret string
}

func NewService(users store.Store[models.User], secret string) *Service {
	return &Service{users: users, secret: secret}
}

// Register stores a new user with a hashed password. No token is issued; the
// user logs in separately.
func (s *Service) Register(ctx context.Context, name, email, password string) error {
	_, err := s.users.FindOneByField(ctx, "email", email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.users.Insert(ctx, &models.User{Name: name, Email: email, Password: hash})
	if errors.Is(err, store.ErrDuplicate) {
		return ErrEmailTaken
	}
	return err
}

// Login checks the credentials and issues a one-hour bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindOneByField(ctx, "email", email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := CheckPassword(u.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := SignToken(s.secret, u.ID.Hex(), TokenTTL)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, UserID: u.ID.Hex(), Name: u.Name}, nil
}

// Verify validates a bearer token and returns the bound user id.
func (s *Service) Verify(raw string) (string, error) {
	return VerifyToken(s.secret, raw)
}

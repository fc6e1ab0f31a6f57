package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// AuthService registers users, checks credentials and issues tokens.  The
// catalog services do not depend on it.
type AuthService struct {
	store      *repository.Store
	secret     string
	ttlMin     int
	bcryptCost int
	n          notifier
}

func NewAuthService(store *repository.Store, secret string, ttlMin, bcryptCost int, pub Publisher, log zerolog.Logger) *AuthService {
	if ttlMin <= 0 {
		ttlMin = 24 * 60
	}
	return &AuthService{
		store:      store,
		secret:     secret,
		ttlMin:     ttlMin,
		bcryptCost: bcryptCost,
		n:          notifier{pub: pub, log: log.With().Str("service", "auth").Logger()},
	}
}

// Register creates a user.  The unique index decides races: a duplicate
// insert is reported as Conflict even if the pre-check passed.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	var problems []string
	if utf8.RuneCountInString(username) < model.MinUsernameLength {
		problems = append(problems, fmt.Sprintf("username must be at least %d characters", model.MinUsernameLength))
	}
	if utf8.RuneCountInString(password) < model.MinPasswordLength {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters", model.MinPasswordLength))
	}
	if len(problems) > 0 {
		return nil, Validation("%s", strings.Join(problems, "; "))
	}
	if _, err := s.store.Users.GetByUsername(ctx, username); err == nil {
		return nil, Conflict("Username already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, Validation("password cannot be hashed: %v", err)
	}
	u := &model.User{Username: username, PasswordHash: hash}
	if err := s.store.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("Username already exists")
		}
		return nil, err
	}
	s.n.changed(ctx, model.Principal{UserID: u.ID, Username: u.Username}, queue.ResourceUser, queue.ActionCreated, u.ID)
	return u, nil
}

// ValidateCredentials returns the user without its secret, or nil when the
// username is unknown or the password does not match.
func (s *AuthService) ValidateCredentials(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.store.Users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, nil
	}
	u.PasswordHash = ""
	return u, nil
}

// IssueToken signs an access token for u.
func (s *AuthService) IssueToken(u *model.User) (string, error) {
	tok, err := utils.NewAccessToken(s.secret, u.ID, u.Username, s.ttlMin)
	if err != nil {
		return "", err
	}
	return tok.Token, nil
}

// Login validates the credentials and issues a token, failing with
// Unauthorized on a mismatch.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.ValidateCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", Unauthorized("invalid credentials")
	}
	return s.IssueToken(u)
}

// ParseToken resolves a bearer token to the principal it was issued for.
func (s *AuthService) ParseToken(raw string) (model.Principal, error) {
	claims, err := utils.ParseAccessToken(s.secret, raw)
	if err != nil {
		return model.Principal{}, Unauthorized("invalid token")
	}
	id, _ := claims.UserID()
	return model.Principal{UserID: id, Username: claims.Username}, nil
}

// Me returns the current user without its secret.
func (s *AuthService) Me(ctx context.Context, p model.Principal) (*model.User, error) {
	u, err := s.store.Users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, notFound(err, "User", p.UserID)
	}
	u.PasswordHash = ""
	return u, nil
}

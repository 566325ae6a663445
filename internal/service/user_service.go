package service

import (
	"context"
	"errors"

	dom "github.com/thienhiep1711/node-todo-api/internal/domain"
	"github.com/thienhiep1711/node-todo-api/internal/repo"
	"github.com/thienhiep1711/node-todo-api/internal/token"
	"github.com/thienhiep1711/node-todo-api/internal/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailTaken = errors.New("email already registered")

// UserService handles signup, login and token lifecycle.
type UserService struct {
	repo   repo.UserRepo
	tokens *token.Service
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo, tokens *token.Service) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Signup creates a user with a hashed password and issues the first
// auth token. The plaintext password never reaches the store.
func (s *UserService) Signup(ctx context.Context, email, password string) (dom.User, string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return dom.User{}, "", ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, "", err
	}
	u, err := s.repo.Create(ctx, dom.User{Email: email, Password: string(hash)})
	if err != nil {
		if utils.IsMongoDuplicateKey(err) {
			return dom.User{}, "", ErrEmailTaken
		}
		return dom.User{}, "", err
	}
	t, err := s.GenerateAuthToken(ctx, &u)
	if err != nil {
		return dom.User{}, "", err
	}
	return u, t, nil
}

// FindByCredentials checks email and password; returns the user if
// valid. Unknown email and wrong password fail identically.
func (s *UserService) FindByCredentials(ctx context.Context, email, password string) (dom.User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GenerateAuthToken issues a signed token, appends it to the user's
// token set and returns it. The in-memory user is updated too so the
// caller sees the token it was just handed.
func (s *UserService) GenerateAuthToken(ctx context.Context, u *dom.User) (string, error) {
	t, err := s.tokens.Issue(u.ID.Hex(), token.ScopeAuth)
	if err != nil {
		return "", err
	}
	rec := dom.UserToken{Access: token.ScopeAuth, Token: t}
	if err := s.repo.PushToken(ctx, u.ID, rec); err != nil {
		return "", err
	}
	u.Tokens = append(u.Tokens, rec)
	return t, nil
}

// RemoveToken revokes one session by pulling the exact token string.
// Removing a token that is already gone is not an error.
func (s *UserService) RemoveToken(ctx context.Context, u dom.User, t string) error {
	return s.repo.PullToken(ctx, u.ID, t)
}

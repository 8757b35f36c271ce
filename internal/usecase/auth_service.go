package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-league/internal/domain/user"
	"github.com/riskibarqy/tournament-league/internal/platform/logging"
)

// TokenIssuer mints and parses access tokens for a principal.
type TokenIssuer interface {
	Issue(ctx context.Context, principal user.Principal) (string, error)
	Parse(ctx context.Context, token string) (user.Principal, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type Session struct {
	UserID int64
	Token  string
}

type AuthService struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   *logging.Logger
}

func NewAuthService(userRepo user.Repository, hasher PasswordHasher, tokens TokenIssuer, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	created, err := s.createUser(ctx, input, user.RoleUser)
	if err != nil {
		return Session{}, err
	}

	return s.issue(ctx, created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	item, exists, err := s.userRepo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return Session{}, internalError(err, "get user by email")
	}
	if !exists {
		return Session{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if err := s.hasher.Compare(item.PasswordHash, password); err != nil {
		return Session{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	return s.issue(ctx, item)
}

// VerifyAccessToken resolves a bearer token to the current principal. The user
// is reloaded so deleted accounts and role changes apply immediately.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyAccessToken")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: missing access token", ErrUnauthorized)
	}

	claims, err := s.tokens.Parse(ctx, token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	item, exists, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return user.Principal{}, internalError(err, "get user %d", claims.UserID)
	}
	if !exists {
		return user.Principal{}, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}

	return item.Principal(), nil
}

// EnsureAdmin creates the bootstrap admin account when no user owns email yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, input RegisterInput) (user.User, error) {
	item, exists, err := s.userRepo.GetByEmail(ctx, user.NormalizeEmail(input.Email))
	if err != nil {
		return user.User{}, internalError(err, "get user by email")
	}
	if exists {
		return item, nil
	}

	created, err := s.createUser(ctx, input, user.RoleAdmin)
	if err != nil {
		return user.User{}, err
	}
	s.logger.InfoContext(ctx, "bootstrap admin created", "user_id", created.ID, "email", created.Email)
	return created, nil
}

func (s *AuthService) createUser(ctx context.Context, input RegisterInput, role user.Role) (user.User, error) {
	item := user.User{
		Name:  strings.TrimSpace(input.Name),
		Email: user.NormalizeEmail(input.Email),
		Role:  role,
	}
	if err := item.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validatePassword(input.Password); err != nil {
		return user.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return user.User{}, internalError(err, "hash password")
	}
	item.PasswordHash = hash

	created, err := s.userRepo.Create(ctx, item)
	if errors.Is(err, user.ErrDuplicateEmail) {
		return user.User{}, fmt.Errorf("%w: user already exists", ErrConflict)
	}
	if err != nil {
		return user.User{}, internalError(err, "create user")
	}
	return created, nil
}

func (s *AuthService) issue(ctx context.Context, item user.User) (Session, error) {
	token, err := s.tokens.Issue(ctx, item.Principal())
	if err != nil {
		return Session{}, internalError(err, "issue access token")
	}
	return Session{UserID: item.ID, Token: token}, nil
}

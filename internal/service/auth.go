package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"yen-network/internal/auth"
	"yen-network/internal/domain"
	"yen-network/internal/repository"
)

// AuthResult is a user paired with a freshly issued token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService handles registration, login and identity lookup.
type AuthService struct {
	userRepo    repository.UserRepository
	tokens      *auth.TokenIssuer
	adminEmails map[string]struct{}
}

// NewAuthService creates an AuthService. Emails in adminEmails are always
// registered with the admin role.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenIssuer, adminEmails []string) *AuthService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	if tokens == nil {
		panic("TokenIssuer cannot be nil for AuthService")
	}
	allow := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = NormalizeEmail(e); e != "" {
			allow[e] = struct{}{}
		}
	}
	return &AuthService{userRepo: userRepo, tokens: tokens, adminEmails: allow}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAdminEmail reports whether the email is on the admin allow-list.
func (s *AuthService) IsAdminEmail(email string) bool {
	_, ok := s.adminEmails[NormalizeEmail(email)]
	return ok
}

// Register creates a user and returns it with a token. An empty role means
// entrepreneur; an allow-listed email always becomes admin.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*AuthResult, error) {
	email = NormalizeEmail(email)
	logCtx := logrus.WithFields(logrus.Fields{"email": email, "requested_role": role})

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		logCtx.Warn("Registration rejected: email already exists")
		return nil, ErrEmailTaken
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		logCtx.WithError(err).Error("Failed to check existing email during registration")
		return nil, ErrInternalServer
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	if role == "" {
		role = domain.RoleEntrepreneur
	}
	if s.IsAdminEmail(email) {
		role = domain.RoleAdmin
	}

	user := &domain.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Registration rejected: email taken concurrently")
			return nil, ErrEmailTaken
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		logCtx.WithError(err).Error("Failed to issue token after registration")
		return nil, ErrInternalServer
	}

	logCtx.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered successfully")
	user.Password = ""
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials. Unknown email and wrong password both yield
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	logCtx := logrus.WithField("email", email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: user not found")
			return nil, ErrInvalidCredentials
		}
		logCtx.WithError(err).Error("Login attempt failed: error finding user")
		return nil, ErrInternalServer
	}
	if user == nil {
		logCtx.Warn("Login attempt failed: repository returned nil user")
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.Password) {
		logCtx.Warn("Login attempt failed: invalid password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		logCtx.WithError(err).Error("Failed to issue token during login")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	user.Password = ""
	return &AuthResult{User: user, Token: token}, nil
}

// Me returns the user behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load current user")
		return nil, ErrInternalServer
	}
	user.Password = ""
	return user, nil
}

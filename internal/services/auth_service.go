package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fathima-sithara/files-service/internal/models"
	"github.com/fathima-sithara/files-service/internal/queue"
	"github.com/fathima-sithara/files-service/internal/repository"
	"github.com/fathima-sithara/files-service/internal/sessions"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns registration, login and token resolution. Sessions live
// in the session store; account records in the user repository.
type AuthService struct {
	users    repository.UserRepository
	sessions *sessions.Store
	welcome  queue.Producer
	logger   *zap.SugaredLogger
}

func NewAuthService(users repository.UserRepository, store *sessions.Store, welcome queue.Producer, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, sessions: store, welcome: welcome, logger: logger}
}

// Register creates an account and enqueues a welcome job. The enqueue is
// fire-and-forget: a queue hiccup never fails the registration.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	job := models.WelcomeJob{UserID: user.ID.Hex()}
	if err := s.welcome.Enqueue(ctx, user.ID.Hex(), job); err != nil {
		s.logger.Errorw("enqueue welcome job", "user", user.ID.Hex(), "error", err)
	}
	return user, nil
}

// Login verifies credentials and opens a new session. Invalid email and
// invalid password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}
	return s.sessions.Create(ctx, user.ID.Hex())
}

// Logout revokes the session behind token. An unknown token is a 401, not a
// silent success: the caller presented credentials that resolve to nothing.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return err
	}
	if userID == "" {
		return ErrUnauthorized
	}
	return s.sessions.Revoke(ctx, token)
}

// UserFromToken resolves token to its user record.
func (s *AuthService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, ErrUnauthorized
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fathima-sithara/files-service/internal/models"
	"github.com/fathima-sithara/files-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrUserNotFound is the job-level failure for a welcome job whose user no
// longer exists.
var ErrUserNotFound = errors.New("user not found")

// Welcomer consumes welcome jobs. There is no real mail provider behind it;
// the greeting is a log line.
type Welcomer struct {
	users  repository.UserRepository
	logger *zap.SugaredLogger
}

func NewWelcomer(users repository.UserRepository, logger *zap.SugaredLogger) *Welcomer {
	return &Welcomer{users: users, logger: logger}
}

func (w *Welcomer) Handle(ctx context.Context, key string, value []byte) error {
	var job models.WelcomeJob
	if err := json.Unmarshal(value, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingField, err)
	}
	if job.UserID == "" {
		return fmt.Errorf("%w: userId", ErrMissingField)
	}
	userID, err := primitive.ObjectIDFromHex(job.UserID)
	if err != nil {
		return fmt.Errorf("%w: userId", ErrMissingField)
	}
	user, err := w.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	w.logger.Infof("Welcome %s!", user.Email)
	return nil
}

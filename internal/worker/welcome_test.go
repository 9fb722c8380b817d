package worker

import (
	"context"
	"testing"

	"github.com/fathima-sithara/files-service/internal/models"
	"github.com/fathima-sithara/files-service/internal/repository"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestWelcomeHandle(t *testing.T) {
	users := repository.NewMemoryUserRepo()
	w := NewWelcomer(users, zap.NewNop().Sugar())
	ctx := context.Background()

	user := &models.User{Email: "alice@example.com"}
	require.NoError(t, users.Create(ctx, user))

	payload := []byte(`{"userId":"` + user.ID.Hex() + `"}`)
	require.NoError(t, w.Handle(ctx, user.ID.Hex(), payload))

	// Redelivery of a welcome job is harmless.
	require.NoError(t, w.Handle(ctx, user.ID.Hex(), payload))
}

func TestWelcomeHandleErrors(t *testing.T) {
	w := NewWelcomer(repository.NewMemoryUserRepo(), zap.NewNop().Sugar())
	ctx := context.Background()

	require.ErrorIs(t, w.Handle(ctx, "k", []byte(`{}`)), ErrMissingField)
	require.ErrorIs(t, w.Handle(ctx, "k", []byte(`{"userId":"nope"}`)), ErrMissingField)

	missing := models.WelcomeJob{UserID: primitive.NewObjectID().Hex()}
	payload := []byte(`{"userId":"` + missing.UserID + `"}`)
	require.ErrorIs(t, w.Handle(ctx, "k", payload), ErrUserNotFound)
}

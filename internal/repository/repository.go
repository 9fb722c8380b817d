package repository

import (
	"context"
	"errors"

	"github.com/fathima-sithara/files-service/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrFileNotFound = errors.New("file not found")
)

// PageSize is the fixed page size for catalog listings.
const PageSize = 20

// UserRepository stores account records.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	Alive(ctx context.Context) bool
}

// FileRepository stores catalog entries. It is the sole authority on
// ownership and visibility; it performs no locking, so SetVisibility is
// last-write-wins by design.
type FileRepository interface {
	Insert(ctx context.Context, f *models.FileEntry) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.FileEntry, error)
	// FindOwned returns the entry only when it is owned by userID.
	FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.FileEntry, error)
	// ListByParent returns one fixed-size page of ownerID's entries under
	// parentID, in insertion order. page is 0-indexed.
	ListByParent(ctx context.Context, parentID string, ownerID primitive.ObjectID, page int64) ([]models.FileEntry, error)
	// SetVisibility overwrites is_public unconditionally when the entry is
	// owned by userID, returning the updated entry.
	SetVisibility(ctx context.Context, id, userID primitive.ObjectID, public bool) (*models.FileEntry, error)
	Count(ctx context.Context) (int64, error)
}

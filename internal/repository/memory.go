package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/fathima-sithara/files-service/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories backing tests and local development. They mirror
// the Mongo implementations' contracts, including insertion-order listing
// and unconditional visibility overwrites.

type MemoryUserRepo struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{}
}

func (r *MemoryUserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return errors.New("duplicate email")
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users = append(r.users, *u)
	return nil
}

func (r *MemoryUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *MemoryUserRepo) Alive(ctx context.Context) bool { return true }

type MemoryFileRepo struct {
	mu      sync.RWMutex
	entries []models.FileEntry
}

func NewMemoryFileRepo() *MemoryFileRepo {
	return &MemoryFileRepo{}
}

func (r *MemoryFileRepo) Insert(ctx context.Context, f *models.FileEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	r.entries = append(r.entries, *f)
	return nil
}

func (r *MemoryFileRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.FileEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.entries {
		if r.entries[i].ID == id {
			f := r.entries[i]
			return &f, nil
		}
	}
	return nil, ErrFileNotFound
}

func (r *MemoryFileRepo) FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.FileEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.entries {
		if r.entries[i].ID == id && r.entries[i].UserID == userID {
			f := r.entries[i]
			return &f, nil
		}
	}
	return nil, ErrFileNotFound
}

func (r *MemoryFileRepo) ListByParent(ctx context.Context, parentID string, ownerID primitive.ObjectID, page int64) ([]models.FileEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []models.FileEntry{}
	for i := range r.entries {
		if r.entries[i].ParentID == parentID && r.entries[i].UserID == ownerID {
			matched = append(matched, r.entries[i])
		}
	}
	start := PageSize * page
	if start >= int64(len(matched)) {
		return []models.FileEntry{}, nil
	}
	end := start + PageSize
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return matched[start:end], nil
}

func (r *MemoryFileRepo) SetVisibility(ctx context.Context, id, userID primitive.ObjectID, public bool) (*models.FileEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == id && r.entries[i].UserID == userID {
			r.entries[i].IsPublic = public
			f := r.entries[i]
			return &f, nil
		}
	}
	return nil, ErrFileNotFound
}

func (r *MemoryFileRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.entries)), nil
}

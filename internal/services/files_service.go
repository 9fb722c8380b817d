package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"time"

	"github.com/fathima-sithara/files-service/internal/models"
	"github.com/fathima-sithara/files-service/internal/queue"
	"github.com/fathima-sithara/files-service/internal/repository"
	"github.com/fathima-sithara/files-service/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ThumbnailWidths are the derived-artifact widths produced for every image.
var ThumbnailWidths = []int{500, 200, 100}

// UploadInput is the validated upload request. Data is the decoded payload;
// it is empty for folders.
type UploadInput struct {
	Name     string
	Type     string
	ParentID string
	IsPublic bool
	Data     []byte
}

// FilesService is the access-controlled file catalog: it validates uploads,
// persists blobs, applies ownership/visibility rules and hands image uploads
// to the thumbnail queue.
type FilesService struct {
	files      repository.FileRepository
	blobs      *storage.DiskStore
	thumbnails queue.Producer
	logger     *zap.SugaredLogger
}

func NewFilesService(files repository.FileRepository, blobs *storage.DiskStore, thumbnails queue.Producer, logger *zap.SugaredLogger) *FilesService {
	return &FilesService{files: files, blobs: blobs, thumbnails: thumbnails, logger: logger}
}

// Upload validates in, persists the blob for non-folder types, inserts the
// catalog record and, for images, enqueues a thumbnail job. The parent only
// has to exist and be a folder; it does not have to belong to the uploader.
func (s *FilesService) Upload(ctx context.Context, ownerID primitive.ObjectID, in UploadInput) (*models.FileEntry, error) {
	if in.Name == "" {
		return nil, ErrMissingName
	}
	if !models.ValidType(in.Type) {
		return nil, ErrInvalidType
	}
	if in.Type != models.TypeFolder && len(in.Data) == 0 {
		return nil, ErrMissingData
	}

	parentID := in.ParentID
	if parentID == "" {
		parentID = models.RootParentID
	}
	if parentID != models.RootParentID {
		pid, err := primitive.ObjectIDFromHex(parentID)
		if err != nil {
			return nil, ErrParentNotFound
		}
		parent, err := s.files.FindByID(ctx, pid)
		if errors.Is(err, repository.ErrFileNotFound) {
			return nil, ErrParentNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("lookup parent: %w", err)
		}
		if parent.Type != models.TypeFolder {
			return nil, ErrParentNotFolder
		}
	}

	entry := &models.FileEntry{
		UserID:    ownerID,
		Name:      in.Name,
		Type:      in.Type,
		ParentID:  parentID,
		IsPublic:  in.IsPublic,
		CreatedAt: time.Now().UTC(),
	}

	if in.Type == models.TypeFolder {
		if err := s.files.Insert(ctx, entry); err != nil {
			return nil, fmt.Errorf("insert folder: %w", err)
		}
		return entry, nil
	}

	// The blob write must succeed before the record exists; a record without
	// its bytes is never visible.
	location, err := s.blobs.Store(in.Data)
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}
	entry.LocalPath = location
	if err := s.files.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}

	if in.Type == models.TypeImage {
		job := models.ThumbnailJob{FileID: entry.ID.Hex(), UserID: ownerID.Hex()}
		if err := s.thumbnails.Enqueue(ctx, entry.ID.Hex(), job); err != nil {
			// Fire-and-forget from the uploader's perspective.
			s.logger.Errorw("enqueue thumbnail job", "file", entry.ID.Hex(), "error", err)
		}
	}
	return entry, nil
}

// Get returns the entry when requesterID owns it. Anything else is a plain
// not-found so existence never leaks.
func (s *FilesService) Get(ctx context.Context, id string, requesterID primitive.ObjectID) (*models.FileEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	entry, err := s.files.FindOwned(ctx, oid, requesterID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup file: %w", err)
	}
	return entry, nil
}

// List returns one page of the requester's entries under parentID, in
// insertion order. A non-root parent the requester does not own yields an
// empty page, not an error. Malformed pages clamp to 0.
func (s *FilesService) List(ctx context.Context, parentID string, page int64, requesterID primitive.ObjectID) ([]models.FileEntry, error) {
	if page < 0 {
		page = 0
	}
	if parentID == "" {
		parentID = models.RootParentID
	}
	if parentID != models.RootParentID {
		pid, err := primitive.ObjectIDFromHex(parentID)
		if err != nil {
			return []models.FileEntry{}, nil
		}
		if _, err := s.files.FindOwned(ctx, pid, requesterID); err != nil {
			if errors.Is(err, repository.ErrFileNotFound) {
				return []models.FileEntry{}, nil
			}
			return nil, fmt.Errorf("lookup parent: %w", err)
		}
	}
	return s.files.ListByParent(ctx, parentID, requesterID, page)
}

// SetVisibility flips is_public for an entry the requester owns. The write
// is unconditional; concurrent toggles are last-write-wins.
func (s *FilesService) SetVisibility(ctx context.Context, id string, requesterID primitive.ObjectID, public bool) (*models.FileEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	entry, err := s.files.SetVisibility(ctx, oid, requesterID, public)
	if errors.Is(err, repository.ErrFileNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set visibility: %w", err)
	}
	return entry, nil
}

// Data returns the raw bytes of an entry plus a content type guessed from
// its name. The owner always gets the bytes; everyone else (anonymous or
// authenticated) only when the entry is public. width selects a derived
// artifact by naming convention; zero means the original.
func (s *FilesService) Data(ctx context.Context, id string, requester *primitive.ObjectID, width int) ([]byte, string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, "", ErrNotFound
	}
	entry, err := s.files.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrFileNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("lookup file: %w", err)
	}
	if !entry.IsPublic && (requester == nil || *requester != entry.UserID) {
		return nil, "", ErrNotFound
	}
	if entry.Type == models.TypeFolder || entry.LocalPath == "" {
		return nil, "", ErrNotFound
	}

	location := entry.LocalPath
	if width != 0 {
		location = s.blobs.ThumbnailLocation(location, width)
	}
	data, err := s.blobs.Retrieve(location)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("retrieve blob: %w", err)
	}

	ct := mime.TypeByExtension(filepath.Ext(entry.Name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return data, ct, nil
}

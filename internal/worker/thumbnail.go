package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fathima-sithara/files-service/internal/models"
	"github.com/fathima-sithara/files-service/internal/repository"
	"github.com/fathima-sithara/files-service/internal/services"
	"github.com/fathima-sithara/files-service/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Job-level failures handed back to the queue's retry policy.
var (
	ErrMissingField = errors.New("missing job field")
	ErrFileNotFound = errors.New("file not found")
)

// Thumbnailer consumes thumbnail jobs: it loads the source entry through the
// catalog, reads its bytes from the blob store and writes one resized
// derivative per width. Rerunning a job overwrites the same artifacts, so
// redelivery is safe.
type Thumbnailer struct {
	files  repository.FileRepository
	blobs  *storage.DiskStore
	logger *zap.SugaredLogger
}

func NewThumbnailer(files repository.FileRepository, blobs *storage.DiskStore, logger *zap.SugaredLogger) *Thumbnailer {
	return &Thumbnailer{files: files, blobs: blobs, logger: logger}
}

// Handle processes one queued job. The job is considered handled once the
// source entry is found: per-width failures are logged and swallowed, and
// one width failing never blocks the others.
func (t *Thumbnailer) Handle(ctx context.Context, key string, value []byte) error {
	var job models.ThumbnailJob
	if err := json.Unmarshal(value, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingField, err)
	}
	if job.FileID == "" {
		return fmt.Errorf("%w: fileId", ErrMissingField)
	}
	if job.UserID == "" {
		return fmt.Errorf("%w: userId", ErrMissingField)
	}

	fileID, err := primitive.ObjectIDFromHex(job.FileID)
	if err != nil {
		return fmt.Errorf("%w: fileId", ErrMissingField)
	}
	userID, err := primitive.ObjectIDFromHex(job.UserID)
	if err != nil {
		return fmt.Errorf("%w: userId", ErrMissingField)
	}

	entry, err := t.files.FindOwned(ctx, fileID, userID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return ErrFileNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup file: %w", err)
	}

	var g errgroup.Group
	for _, width := range services.ThumbnailWidths {
		width := width
		g.Go(func() error {
			if err := t.resize(entry, width); err != nil {
				t.logger.Errorw("thumbnail failed", "file", job.FileID, "width", width, "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (t *Thumbnailer) resize(entry *models.FileEntry, width int) error {
	data, err := t.blobs.Retrieve(entry.LocalPath)
	if err != nil {
		return err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, encodeFormat(format)); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return t.blobs.Put(t.blobs.ThumbnailLocation(entry.LocalPath, width), buf.Bytes())
}

func encodeFormat(format string) imaging.Format {
	switch format {
	case "png":
		return imaging.PNG
	case "gif":
		return imaging.GIF
	case "bmp":
		return imaging.BMP
	case "tiff":
		return imaging.TIFF
	default:
		return imaging.JPEG
	}
}

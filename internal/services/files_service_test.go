package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/fathima-sithara/files-service/internal/models"
	"github.com/fathima-sithara/files-service/internal/queue"
	"github.com/fathima-sithara/files-service/internal/repository"
	"github.com/fathima-sithara/files-service/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type filesFixture struct {
	svc   *FilesService
	repo  *repository.MemoryFileRepo
	blobs *storage.DiskStore
	jobs  *queue.Memory
}

func newFilesFixture(t *testing.T) *filesFixture {
	t.Helper()
	repo := repository.NewMemoryFileRepo()
	blobs := storage.NewDiskStore(t.TempDir())
	jobs := queue.NewMemory(64)
	return &filesFixture{
		svc:   NewFilesService(repo, blobs, jobs, zap.NewNop().Sugar()),
		repo:  repo,
		blobs: blobs,
		jobs:  jobs,
	}
}

func TestUploadValidation(t *testing.T) {
	f := newFilesFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	_, err := f.svc.Upload(ctx, owner, UploadInput{Type: models.TypeFolder})
	require.ErrorIs(t, err, ErrMissingName)

	_, err = f.svc.Upload(ctx, owner, UploadInput{Name: "x", Type: "archive"})
	require.ErrorIs(t, err, ErrInvalidType)

	_, err = f.svc.Upload(ctx, owner, UploadInput{Name: "x", Type: models.TypeFile})
	require.ErrorIs(t, err, ErrMissingData)

	_, err = f.svc.Upload(ctx, owner, UploadInput{
		Name: "x", Type: models.TypeFile, ParentID: primitive.NewObjectID().Hex(), Data: []byte("d"),
	})
	require.ErrorIs(t, err, ErrParentNotFound)
}

func TestUploadParentMustBeFolderRegardlessOfOwner(t *testing.T) {
	f := newFilesFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	// A plain file owned by someone else is still an invalid parent.
	notAFolder, err := f.svc.Upload(ctx, stranger, UploadInput{
		Name: "blob.bin", Type: models.TypeFile, Data: []byte("d"),
	})
	require.NoError(t, err)

	_, err = f.svc.Upload(ctx, owner, UploadInput{
		Name: "x", Type: models.TypeFile, ParentID: notAFolder.ID.Hex(), Data: []byte("d"),
	})
	require.ErrorIs(t, err, ErrParentNotFolder)

	// A folder owned by someone else is an acceptable parent: only
	// is-a-folder is checked.
	theirFolder, err := f.svc.Upload(ctx, stranger, UploadInput{Name: "docs", Type: models.TypeFolder})
	require.NoError(t, err)

	entry, err := f.svc.Upload(ctx, owner, UploadInput{
		Name: "x", Type: models.TypeFile, ParentID: theirFolder.ID.Hex(), Data: []byte("d"),
	})
	require.NoError(t, err)
	assert.Equal(t, theirFolder.ID.Hex(), entry.ParentID)
}

func TestUploadFolderHasNoLocalPath(t *testing.T) {
	f := newFilesFixture(t)

	entry, err := f.svc.Upload(context.Background(), primitive.NewObjectID(), UploadInput{
		Name: "notes", Type: models.TypeFolder,
	})
	require.NoError(t, err)
	assert.Empty(t, entry.LocalPath)
	assert.Equal(t, models.RootParentID, entry.ParentID)
	assert.False(t, entry.IsPublic, "visibility defaults to private")
	assert.Equal(t, 0, f.jobs.Len(), "folders never enqueue jobs")
}

func TestUploadFileWritesBlobBeforeRecord(t *testing.T) {
	f := newFilesFixture(t)

	entry, err := f.svc.Upload(context.Background(), primitive.NewObjectID(), UploadInput{
		Name: "notes.txt", Type: models.TypeFile, Data: []byte("content"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, entry.LocalPath)

	data, err := f.blobs.Retrieve(entry.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
	assert.Equal(t, 0, f.jobs.Len(), "plain files never enqueue thumbnail jobs")
}

func TestUploadImageEnqueuesThumbnailJob(t *testing.T) {
	f := newFilesFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	entry, err := f.svc.Upload(ctx, owner, UploadInput{
		Name: "cat.png", Type: models.TypeImage, Data: []byte("not-actually-a-png"),
	})
	require.NoError(t, err)

	require.Equal(t, 1, f.jobs.Len())
	_, value, err := f.jobs.Dequeue(ctx)
	require.NoError(t, err)

	var job models.ThumbnailJob
	require.NoError(t, json.Unmarshal(value, &job))
	assert.Equal(t, entry.ID.Hex(), job.FileID)
	assert.Equal(t, owner.Hex(), job.UserID)
}

func TestGetIsOwnerScoped(t *testing.T) {
	f := newFilesFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	entry, err := f.svc.Upload(ctx, owner, UploadInput{Name: "secret", Type: models.TypeFolder})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, entry.ID.Hex(), owner)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)

	_, err = f.svc.Get(ctx, entry.ID.Hex(), stranger)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Get(ctx, "garbage-id", owner)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListPagination(t *testing.T) {
	f := newFilesFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	for i := 0; i < 45; i++ {
		_, err := f.svc.Upload(ctx, owner, UploadInput{
			Name: fmt.Sprintf("folder-%02d", i), Type: models.TypeFolder,
		})
		require.NoError(t, err)
	}
	// Another user's entries never show up in the listing.
	_, err := f.svc.Upload(ctx, stranger, UploadInput{Name: "other", Type: models.TypeFolder})
	require.NoError(t, err)

	page0, err := f.svc.List(ctx, "", 0, owner)
	require.NoError(t, err)
	require.Len(t, page0, 20)
	assert.Equal(t, "folder-00", page0[0].Name)
	assert.Equal(t, "folder-19", page0[19].Name, "insertion order within the page")

	page1, err := f.svc.List(ctx, "", 1, owner)
	require.NoError(t, err)
	require.Len(t, page1, 20)
	assert.Equal(t, "folder-20", page1[0].Name)

	page2, err := f.svc.List(ctx, "", 2, owner)
	require.NoError(t, err)
	require.Len(t, page2, 5)

	page3, err := f.svc.List(ctx, "", 3, owner)
	require.NoError(t, err)
	assert.Empty(t, page3)

	// Malformed pages clamp to 0.
	clamped, err := f.svc.List(ctx, "", -7, owner)
	require.NoError(t, err)
	assert.Equal(t, page0, clamped)
}

func TestListForeignParentIsEmptyNotError(t *testing.T) {
	f := newFilesFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	theirFolder, err := f.svc.Upload(ctx, stranger, UploadInput{Name: "docs", Type: models.TypeFolder})
	require.NoError(t, err)

	entries, err := f.svc.List(ctx, theirFolder.ID.Hex(), 0, owner)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = f.svc.List(ctx, "not-an-id", 0, owner)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSetVisibility(t *testing.T) {
	f := newFilesFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	entry, err := f.svc.Upload(ctx, owner, UploadInput{
		Name: "pic.png", Type: models.TypeImage, Data: []byte("img"),
	})
	require.NoError(t, err)

	updated, err := f.svc.SetVisibility(ctx, entry.ID.Hex(), owner, true)
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)

	_, err = f.svc.SetVisibility(ctx, entry.ID.Hex(), stranger, true)
	require.ErrorIs(t, err, ErrNotFound)

	updated, err = f.svc.SetVisibility(ctx, entry.ID.Hex(), owner, false)
	require.NoError(t, err)
	assert.False(t, updated.IsPublic)
}

func TestDataVisibility(t *testing.T) {
	f := newFilesFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	entry, err := f.svc.Upload(ctx, owner, UploadInput{
		Name: "notes.txt", Type: models.TypeFile, Data: []byte("hello"),
	})
	require.NoError(t, err)

	// Owner always reads their own bytes.
	data, ct, err := f.svc.Data(ctx, entry.ID.Hex(), &owner, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
	assert.Contains(t, ct, "text/plain")

	// Private: anonymous and non-owner both get not-found, never forbidden.
	_, _, err = f.svc.Data(ctx, entry.ID.Hex(), nil, 0)
	require.ErrorIs(t, err, ErrNotFound)
	_, _, err = f.svc.Data(ctx, entry.ID.Hex(), &stranger, 0)
	require.ErrorIs(t, err, ErrNotFound)

	// Published: anyone reads it.
	_, err = f.svc.SetVisibility(ctx, entry.ID.Hex(), owner, true)
	require.NoError(t, err)
	data, _, err = f.svc.Data(ctx, entry.ID.Hex(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	// Unpublished again: anonymous access is gone.
	_, err = f.svc.SetVisibility(ctx, entry.ID.Hex(), owner, false)
	require.NoError(t, err)
	_, _, err = f.svc.Data(ctx, entry.ID.Hex(), nil, 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDataForFolder(t *testing.T) {
	f := newFilesFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	folder, err := f.svc.Upload(ctx, owner, UploadInput{Name: "docs", Type: models.TypeFolder})
	require.NoError(t, err)

	_, _, err = f.svc.Data(ctx, folder.ID.Hex(), &owner, 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDataMissingThumbnail(t *testing.T) {
	f := newFilesFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	entry, err := f.svc.Upload(ctx, owner, UploadInput{
		Name: "pic.png", Type: models.TypeImage, Data: []byte("img"),
	})
	require.NoError(t, err)

	// No worker has run; the derived artifact does not exist yet.
	_, _, err = f.svc.Data(ctx, entry.ID.Hex(), &owner, 500)
	require.ErrorIs(t, err, ErrNotFound)
}

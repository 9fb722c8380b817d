package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RootParentID is the sentinel parent id for entries at the top of the
// namespace.
const RootParentID = "0"

// File entry types.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// ValidType reports whether t is one of the three entry types.
func ValidType(t string) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}

// FileEntry is a catalog record for a folder, file or image. Folders never
// carry a LocalPath; files and images get one once their bytes have been
// written to the blob store. LocalPath is internal and never serialized to
// clients.
type FileEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Type      string             `bson:"type" json:"type"`
	ParentID  string             `bson:"parent_id" json:"parentId"`
	IsPublic  bool               `bson:"is_public" json:"isPublic"`
	LocalPath string             `bson:"local_path,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"-"`
}

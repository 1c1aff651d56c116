package storage

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlobStore is the binary store for uploaded evidence files, separate from
// the structured metadata records.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data io.Reader) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) ([]byte, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// GridFSStore stores blobs in a GridFS bucket on the application database.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSStore(db *mongo.Database) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, err
	}
	return &GridFSStore{bucket: bucket}, nil
}

func (s *GridFSStore) Put(ctx context.Context, key, contentType string, data io.Reader) (primitive.ObjectID, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(deadline)
	}
	opts := options.GridFSUpload().SetMetadata(bson.M{"content_type": contentType})
	return s.bucket.UploadFromStream(key, data, opts)
}

func (s *GridFSStore) Get(ctx context.Context, id primitive.ObjectID) ([]byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetReadDeadline(deadline)
	}
	var buf bytes.Buffer
	if _, err := s.bucket.DownloadToStream(id, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *GridFSStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(deadline)
	}
	return s.bucket.Delete(id)
}

// SanitizeFilename strips path components and characters unsafe for a
// stored filename.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		return "file"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

// ObjectKey returns a unique storage key for an uploaded file.
func ObjectKey(filename string) string {
	return uuid.New().String() + "_" + SanitizeFilename(filename)
}

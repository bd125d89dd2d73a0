package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore persists uploaded bytes and returns their public URL.
// *storage.S3Store implements it.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// Upload is one received file.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadService struct {
	store   ObjectStore
	maxSize int64
	now     func() time.Time
	newID   func() uuid.UUID
}

func NewUploadService(store ObjectStore, maxSize int64) *UploadService {
	return &UploadService{
		store:   store,
		maxSize: maxSize,
		now:     time.Now,
		newID:   uuid.New,
	}
}

// StorageKey returns images/<yyyy>/<mm>/<dd>/<id><ext>, keeping the
// lower-cased extension of fileName.
func StorageKey(t time.Time, id uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("images/%04d/%02d/%02d/%s%s", t.Year(), t.Month(), t.Day(), id, ext)
}

// Store checks the size limit and writes the file to the object store.
func (s *UploadService) Store(ctx context.Context, u Upload) (string, error) {
	if u.Body == nil {
		return "", &ValidationError{Code: ErrMissingField, Field: "file"}
	}
	if u.Size > s.maxSize {
		return "", &ValidationError{
			Code: ErrFileTooLarge,
			Err:  fmt.Errorf("File must not be larger than %d bytes.", s.maxSize),
		}
	}

	contentType := u.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := StorageKey(s.now().UTC(), s.newID(), u.FileName)
	url, err := s.store.Put(ctx, key, u.Body, u.Size, contentType)
	if err != nil {
		return "", fmt.Errorf("error storing upload: %w", err)
	}
	return url, nil
}

package memory

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"sync"
	"time"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

type object struct {
	data      []byte
	mimeType  string
	etag      string
	updatedAt time.Time
}

// Backend is an in-memory implementation of the siteconfig.BlobStore interface
type Backend struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects: make(map[string]object),
	}
}

func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*siteconfig.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, exists := b.objects[objectKey]
	if !exists {
		return nil, siteconfig.ErrObjectNotFound
	}

	return &siteconfig.ObjectMeta{
		Key:         objectKey,
		Size:        int64(len(obj.data)),
		ContentType: obj.mimeType,
		UpdatedAt:   obj.updatedAt,
		ETag:        obj.etag,
		Metadata:    map[string]string{"mime_type": obj.mimeType},
	}, nil
}

// Upload stores content as application/octet-stream, keeping the MIME type of
// an existing object with the same key.
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	return b.put(objectKey, reader, "")
}

func (b *Backend) UploadWithParams(ctx context.Context, reader io.Reader, params siteconfig.UploadParams) error {
	return b.put(params.ObjectKey, reader, params.MimeType)
}

func (b *Backend) put(objectKey string, reader io.Reader, mimeType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	sum := md5.Sum(data)

	b.mu.Lock()
	defer b.mu.Unlock()

	if mimeType == "" {
		mimeType = "application/octet-stream"
		if prev, ok := b.objects[objectKey]; ok {
			mimeType = prev.mimeType
		}
	}
	b.objects[objectKey] = object{
		data:      data,
		mimeType:  mimeType,
		etag:      hex.EncodeToString(sum[:]),
		updatedAt: time.Now().UTC(),
	}
	return nil
}

func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, exists := b.objects[objectKey]
	if !exists {
		return nil, siteconfig.ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

// Keys returns the stored object keys in no particular order.
func (b *Backend) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		keys = append(keys, k)
	}
	return keys
}

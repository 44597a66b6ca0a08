package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// CloudStorageStore keeps zone snapshots as JSON objects in a GCS bucket,
// one object per zone under the zones/ prefix. Used when restarts must not
// lose warm snapshots.
type CloudStorageStore struct {
	client     *storage.Client
	bucketName string
	ttl        time.Duration
	prefix     string
}

// NewCloudStorageStore creates a GCS-backed store. The bucket name comes
// from CACHE_BUCKET, defaulting to inspark-daily-cache.
func NewCloudStorageStore(ttl time.Duration) (*CloudStorageStore, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	bucketName := "inspark-daily-cache"
	if env := os.Getenv("CACHE_BUCKET"); env != "" {
		bucketName = env
	}

	return &CloudStorageStore{
		client:     client,
		bucketName: bucketName,
		ttl:        ttl,
		prefix:     "zones/",
	}, nil
}

func (s *CloudStorageStore) objectName(zoneID string) string {
	return s.prefix + zoneID + ".json"
}

func (s *CloudStorageStore) Get(ctx context.Context, zoneID string) (*Entry, error) {
	obj := s.client.Bucket(s.bucketName).Object(s.objectName(zoneID))

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("opening snapshot reader: %w", err)
	}
	defer reader.Close()

	var entry Entry
	if err := json.NewDecoder(reader).Decode(&entry); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, ErrMiss
	}
	return &entry, nil
}

func (s *CloudStorageStore) Set(ctx context.Context, entry *Entry) error {
	if entry.ExpiresAt.IsZero() {
		entry.ExpiresAt = time.Now().Add(s.ttl)
	}

	obj := s.client.Bucket(s.bucketName).Object(s.objectName(entry.ZoneID))
	writer := obj.NewWriter(ctx)
	writer.ContentType = "application/json"

	if err := json.NewEncoder(writer).Encode(entry); err != nil {
		writer.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

func (s *CloudStorageStore) Invalidate(ctx context.Context, zoneID string) error {
	obj := s.client.Bucket(s.bucketName).Object(s.objectName(zoneID))
	if err := obj.Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

func (s *CloudStorageStore) Clear(ctx context.Context) error {
	it := s.client.Bucket(s.bucketName).Objects(ctx, &storage.Query{Prefix: s.prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("listing snapshots: %w", err)
		}
		obj := s.client.Bucket(s.bucketName).Object(attrs.Name)
		if err := obj.Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
			return fmt.Errorf("deleting snapshot %s: %w", attrs.Name, err)
		}
	}
	return nil
}

func (s *CloudStorageStore) Close() error {
	return s.client.Close()
}

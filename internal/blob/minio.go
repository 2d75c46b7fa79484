package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dharsanguruparan/notevault/internal/config"
	"github.com/dharsanguruparan/notevault/internal/model"
)

// MinioStore keeps each payload as one object whose key is the blob id, with
// filename and content type carried in user metadata.
type MinioStore struct {
	client *minio.Client
	bucket string
	region string
	logger *slog.Logger
}

// NewMinioStore creates a MinIO client from the Config.
func NewMinioStore(cfg *config.Config, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.S3Region,
		logger: logger,
	}, nil
}

// EnsureBucket makes sure the payload bucket exists before first use.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("make bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Put stores the payload under a fresh id.
func (s *MinioStore) Put(ctx context.Context, data []byte, name, contentType string, metadata map[string]string) (string, error) {
	id := uuid.NewString()
	userMeta := map[string]string{MetaFilename: name}
	for k, v := range metadata {
		userMeta[k] = v
	}
	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: userMeta,
	}
	_, err := s.client.PutObject(ctx, s.bucket, id, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return "", fmt.Errorf("put object %s: %w: %w", id, model.ErrStorageWrite, err)
	}
	return id, nil
}

// Get returns the payload and its recorded metadata.
func (s *MinioStore) Get(ctx context.Context, id string) (*Object, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("blob id %q: %w", id, model.ErrInvalidID)
	}
	stat, err := s.client.StatObject(ctx, s.bucket, id, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("blob %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("stat object %s: %w", id, err)
	}
	obj, err := s.client.GetObject(ctx, s.bucket, id, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", id, err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("blob %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("read object %s: %w", id, err)
	}
	meta := normalizeMeta(stat.UserMetadata)
	return &Object{
		Data:        data,
		Filename:    meta[MetaFilename],
		ContentType: stat.ContentType,
		Metadata:    meta,
	}, nil
}

// Delete removes the object; an already-absent entry is not an error.
func (s *MinioStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("blob id %q: %w", id, model.ErrInvalidID)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("remove object %s: %w", id, err)
	}
	return nil
}

// Rename re-stores the payload under a new id with the corrected filename
// and deletes the old entry. MinIO has no in-place rename; if the delete of
// the old entry fails the duplicate is logged and left behind.
func (s *MinioStore) Rename(ctx context.Context, id, name string) (string, error) {
	old, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	meta := old.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	meta[MetaFilename] = name
	if ext := filepath.Ext(name); ext != "" {
		meta[MetaExtension] = strings.TrimPrefix(ext, ".")
	}
	newID, err := s.Put(ctx, old.Data, name, old.ContentType, meta)
	if err != nil {
		return "", err
	}
	if err := s.Delete(ctx, id); err != nil {
		s.logger.Warn("rename left a duplicate blob", "old_id", id, "new_id", newID, "error", err)
	}
	return newID, nil
}

// isNoSuchKey matches the S3 error for absent objects.
func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
	}
	return false
}

// normalizeMeta lowercases metadata keys; MinIO canonicalizes user metadata
// into header form ("Filename", "Original-Filename") on the way back.
func normalizeMeta(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = v
	}
	return out
}

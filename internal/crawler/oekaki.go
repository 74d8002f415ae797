// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package crawler

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nanashi-dev/ressearch/internal/config"
	"github.com/nanashi-dev/ressearch/internal/metrics"
)

// OekakiStore uploads oekaki images to S3-compatible object storage.
type OekakiStore struct {
	client *minio.Client
	bucket string
}

// NewOekakiStore connects to the object store and verifies the bucket
// exists.
func NewOekakiStore(ctx context.Context, cfg *config.OekakiConfig) (*OekakiStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	return &OekakiStore{client: client, bucket: cfg.Bucket}, nil
}

// Upload stores one oekaki image and returns its object key.
func (s *OekakiStore) Upload(ctx context.Context, oekakiID int32, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/png"
	}
	key := fmt.Sprintf("oekaki/%d.png", oekakiID)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload oekaki %d: %w", oekakiID, err)
	}

	metrics.CrawlerOekakiUploads.Inc()
	return key, nil
}

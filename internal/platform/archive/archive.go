// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package archive keeps write-once copies of generated documents in Google Cloud
Storage.

Objects are created with a does-not-exist precondition, so re-rendering a
document never replaces the archived copy.
*/
package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/taibuivan/hrdesk/internal/platform/constants"
)

// GCSArchive writes objects under a prefix of one bucket.
type GCSArchive struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	logger *slog.Logger
}

/*
NewGCSArchive opens a storage client for bucket.

Parameters:
  - context: context.Context
  - bucket: string
  - prefix: string (object name prefix, may be empty)
  - logger: *slog.Logger
  - opts: option.ClientOption (credentials, endpoint)

Returns:
  - *GCSArchive
  - error: client construction failures
*/
func NewGCSArchive(context context.Context, bucket, prefix string, logger *slog.Logger, opts ...option.ClientOption) (*GCSArchive, error) {
	client, err := storage.NewClient(context, opts...)
	if err != nil {
		return nil, fmt.Errorf("archive: storage client: %w", err)
	}

	return &GCSArchive{
		client: client,
		bucket: client.Bucket(bucket),
		prefix: prefix,
		logger: logger,
	}, nil
}

// Put stores data as name unless the object already exists.
func (archive *GCSArchive) Put(context context.Context, name string, data []byte) error {
	objectName := ObjectName(archive.prefix, name)

	writer := archive.bucket.Object(objectName).
		If(storage.Conditions{DoesNotExist: true}).
		NewWriter(context)
	writer.ContentType = constants.ContentTypePDF

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return archive.result(objectName, err)
	}
	return archive.result(objectName, writer.Close())
}

// Close releases the storage client.
func (archive *GCSArchive) Close() error {
	return archive.client.Close()
}

func (archive *GCSArchive) result(objectName string, err error) error {
	if err == nil {
		archive.logger.Info("document_archived", slog.String("object", objectName))
		return nil
	}
	if IsAlreadyExists(err) {
		archive.logger.Debug("document_archive_skipped", slog.String("object", objectName))
		return nil
	}
	return fmt.Errorf("archive: write %s: %w", objectName, err)
}

// ObjectName joins prefix and name into an object key.
func ObjectName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// IsAlreadyExists reports whether err is the precondition failure returned
// for an existing object.
func IsAlreadyExists(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed
}

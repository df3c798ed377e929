package services

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const receiptBucket = "receipts"

type ReceiptStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	EnsureBucket(ctx context.Context) error
}

type minioReceiptStore struct {
	client *minio.Client
}

func NewReceiptStore(endpoint, accessKey, secretKey string, useSSL bool) (ReceiptStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioReceiptStore{client: client}, nil
}

func (m *minioReceiptStore) Upload(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := m.client.PutObject(ctx, receiptBucket, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (m *minioReceiptStore) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, receiptBucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioReceiptStore) EnsureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, receiptBucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, receiptBucket, minio.MakeBucketOptions{})
	}
	return nil
}

package utils

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Object storage for post and profile images. Any S3-compatible endpoint works
// (AWS S3, Cloudflare R2, MinIO); the endpoint comes from STORAGE_ENDPOINT.

func getStorageConfig() (aws.Config, error) {
	accessKey := os.Getenv("STORAGE_ACCESS_KEY_ID")
	secretKey := os.Getenv("STORAGE_SECRET_ACCESS_KEY")

	if accessKey == "" || secretKey == "" {
		return aws.Config{}, fmt.Errorf("STORAGE_ACCESS_KEY_ID or STORAGE_SECRET_ACCESS_KEY is not set")
	}

	region := os.Getenv("STORAGE_REGION")
	if region == "" {
		region = "auto"
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load storage config: %w", err)
	}
	return cfg, nil
}

func getStorageClient() (*s3.Client, error) {
	cfg, err := getStorageConfig()
	if err != nil {
		return nil, err
	}
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return client, nil
}

func getStorageBucket() (string, error) {
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		return "", fmt.Errorf("STORAGE_BUCKET is not set")
	}
	return bucket, nil
}

// NewImageObjectKey builds a unique object key for an uploaded image, e.g.
// "posts/2026/01/9f1c....jpg".
func NewImageObjectKey(prefix, ext string) string {
	now := time.Now().UTC()
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s/%04d/%02d/%s%s", prefix, now.Year(), int(now.Month()), uuid.NewString(), ext)
}

// UploadImage uploads an image to the configured bucket and returns the public URL.
func UploadImage(ctx context.Context, objectKey string, body io.Reader, size int64) (string, error) {
	bucket, err := getStorageBucket()
	if err != nil {
		return "", err
	}
	client, err := getStorageClient()
	if err != nil {
		return "", err
	}

	contentType := mime.TypeByExtension(path.Ext(objectKey))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	return PublicObjectURL(objectKey), nil
}

// DeleteObject removes an object from the bucket. A missing object is not an error.
func DeleteObject(ctx context.Context, objectKey string) error {
	bucket, err := getStorageBucket()
	if err != nil {
		return err
	}
	client, err := getStorageClient()
	if err != nil {
		return err
	}
	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

// PublicObjectURL builds the client-facing URL for an object. STORAGE_PUBLIC_URL
// should be the CDN or public bucket base, without a trailing slash.
func PublicObjectURL(objectKey string) string {
	base := strings.TrimRight(os.Getenv("STORAGE_PUBLIC_URL"), "/")
	if base == "" {
		return objectKey
	}
	return base + "/" + objectKey
}

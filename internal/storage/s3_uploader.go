// Package storage uploads receipt images to S3-compatible object
// storage so the vision model can fetch them by public URL.
package storage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Uploader handles uploading receipt images to S3-compatible storage.
type S3Uploader struct {
	s3Client  *s3.S3
	bucket    string
	publicURL string
}

// Config holds configuration for the S3 uploader.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string
	// PublicURL is the base URL objects are publicly readable under.
	// Defaults to Endpoint/Bucket when empty.
	PublicURL string
}

// NewS3Uploader creates a new uploader. All of endpoint, key pair and
// bucket must be configured.
func NewS3Uploader(config *Config) (*S3Uploader, error) {
	if config.Endpoint == "" || config.AccessKeyID == "" || config.AccessKeySecret == "" {
		return nil, fmt.Errorf("S3 configuration is incomplete")
	}
	if config.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	sess := session.Must(session.NewSession(&aws.Config{
		Region:           aws.String(config.Region),
		Endpoint:         aws.String(config.Endpoint),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
	}))

	publicURL := config.PublicURL
	if publicURL == "" {
		publicURL = strings.TrimSuffix(config.Endpoint, "/") + "/" + config.Bucket
	}

	return &S3Uploader{
		s3Client:  s3.New(sess),
		bucket:    config.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// UploadImage uploads a PNG image and returns its public URL.
func (u *S3Uploader) UploadImage(imageData []byte, filename string) (string, error) {
	_, err := u.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(filename),
		Body:          bytes.NewReader(imageData),
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(int64(len(imageData))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return u.publicURL + "/" + filename, nil
}

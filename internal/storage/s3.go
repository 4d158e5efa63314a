package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
	PresignTTL    time.Duration
}

// S3 resolves keys in a bucket. With a public base URL the key is appended
// to it; otherwise a presigned GET URL is issued.
type S3 struct {
	Presigner     *s3.PresignClient
	Bucket        string
	Prefix        string
	PublicBaseURL string
	PresignTTL    time.Duration
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}
	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &S3{
		Presigner:     s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
		Bucket:        cfg.Bucket,
		Prefix:        strings.Trim(cfg.Prefix, "/"),
		PublicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		PresignTTL:    ttl,
	}, nil
}

func (s *S3) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.Prefix != "" && !strings.HasPrefix(key, s.Prefix+"/") {
		key = s.Prefix + "/" + key
	}
	return key
}

func (s *S3) URL(ctx context.Context, key string) (string, error) {
	k := s.objectKey(key)
	if s.PublicBaseURL != "" {
		return s.PublicBaseURL + "/" + k, nil
	}
	req, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(k),
	}, s3.WithPresignExpires(s.PresignTTL))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", k, err)
	}
	return req.URL, nil
}

func (s *S3) String() string { return fmt.Sprintf("s3(%s/%s)", s.Bucket, s.Prefix) }

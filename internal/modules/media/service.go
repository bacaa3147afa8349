package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	appcfg "github.com/postwave/composer-core/internal/config"
	"github.com/postwave/composer-core/internal/models"
	"go.uber.org/zap"
)

const releaseTimeout = 10 * time.Second

// Service stores draft media in S3 and hands out presigned preview URLs.
type Service struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
	log     *zap.Logger
}

func NewService(cfg *appcfg.AppConfig, log *zap.Logger) (*Service, error) {
	region := cfg.S3.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
		o.UsePathStyle = cfg.S3.PathStyleAccess
	})

	return &Service{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3.Bucket,
		ttl:     time.Duration(cfg.Composer.MediaPresignTTLMin) * time.Minute,
		log:     log,
	}, nil
}

// Upload stores the object and returns a media ref with a presigned preview
// URL. The ref's key is namespaced by session so orphaned uploads are easy to
// sweep.
func (s *Service) Upload(ctx context.Context, sessionID, filename, contentType string, body io.Reader, size int64) (models.MediaRef, error) {
	ref := models.MediaRef{
		ID:     uuid.New().String(),
		Name:   filename,
		Kind:   KindFromContentType(contentType, filename),
		Status: models.MediaUploading,
		Size:   size,
	}
	ref.Key = fmt.Sprintf("uploads/%s/%s%s", sessionID, ref.ID, strings.ToLower(filepath.Ext(filename)))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(ref.Key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		ref.Status = models.MediaError
		return ref, fmt.Errorf("upload media: %w", err)
	}

	preview, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref.Key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		s.log.Warn("presign preview failed", zap.String("key", ref.Key), zap.Error(err))
	} else {
		ref.PreviewURL = preview.URL
	}

	ref.Status = models.MediaComplete
	return ref, nil
}

// Release deletes the stored object behind a ref. It is the store's
// MediaReleaser, so it must tolerate being called from request teardown:
// failures are logged, never propagated.
func (s *Service) Release(ref models.MediaRef) {
	if ref.Key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		s.log.Warn("release media failed", zap.String("key", ref.Key), zap.Error(err))
	}
}

// KindFromContentType classifies an upload, falling back to the file
// extension when the content type is missing or generic.
func KindFromContentType(contentType, filename string) models.MediaKind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "" || ct == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
			ct = byExt
		}
	}
	switch {
	case strings.HasPrefix(ct, "image/"):
		return models.MediaImage
	case strings.HasPrefix(ct, "video/"):
		return models.MediaVideo
	default:
		return models.MediaDocument
	}
}

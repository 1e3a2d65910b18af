package publish

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"
)

// S3Config holds the destination of published videos
type S3Config struct {
	Bucket   string
	Region   string
	Prefix   string
	Endpoint string // optional, for S3-compatible stores such as MinIO
}

type uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// S3Publisher uploads finished videos to an S3 bucket
type S3Publisher struct {
	uploader uploader
	bucket   string
	prefix   string
	logger   *zap.Logger
}

func NewS3Publisher(cfg S3Config, logger *zap.Logger) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return newS3Publisher(s3manager.NewUploader(sess), cfg.Bucket, cfg.Prefix, logger), nil
}

func newS3Publisher(u uploader, bucket, prefix string, logger *zap.Logger) *S3Publisher {
	return &S3Publisher{uploader: u, bucket: bucket, prefix: prefix, logger: logger}
}

// Key returns the object key used for localPath
func (p *S3Publisher) Key(localPath string) string {
	return path.Join(p.prefix, filepath.Base(localPath))
}

// Publish uploads localPath and returns the object location
func (p *S3Publisher) Publish(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "video/mp4"
	}

	key := p.Key(localPath)
	out, err := p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	}, func(u *s3manager.Uploader) {
		u.RequestOptions = append(u.RequestOptions, request.WithAppendUserAgent("go-sepia"))
	})
	if err != nil {
		return "", fmt.Errorf("upload s3://%s/%s: %w", p.bucket, key, err)
	}

	p.logger.Info("uploaded video",
		zap.String("bucket", p.bucket),
		zap.String("key", key),
		zap.String("location", out.Location),
	)
	return out.Location, nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// ObjectAPI S3Store用到的客户端方法，测试时可替换
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store S3（或MinIO等兼容服务）封面存储
type S3Store struct {
	client    ObjectAPI
	bucket    string
	publicURL string
	maxSize   int64
}

var _ book.CoverStore = (*S3Store)(nil)

// NewS3Store 凭证走AWS默认链（环境变量、~/.aws、实例角色）
// 配置了s3_endpoint时使用path-style访问
func NewS3Store(cfg config.StorageConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" || strings.HasPrefix(publicURL, "/") {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return NewS3StoreWithClient(client, cfg.S3Bucket, publicURL, cfg.MaxCoverSize), nil
}

// NewS3StoreWithClient 使用已有客户端创建存储
func NewS3StoreWithClient(client ObjectAPI, bucket, publicURL string, maxSize int64) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxSize:   maxSize,
	}
}

func (s *S3Store) Save(ctx context.Context, _ string, r io.Reader) (string, error) {
	c, err := readCover(r, s.maxSize)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(c.key),
		Body:          c.reader(),
		ContentType:   aws.String(c.contentType),
		ContentLength: aws.Int64(int64(len(c.data))),
	})
	if err != nil {
		return "", apperrors.WrapWithCode(err, apperrors.ErrCodeStorageError, "上传封面失败")
	}
	return c.key, nil
}

// Delete S3删除不存在的对象也返回成功
func (s *S3Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeStorageError, "删除封面失败")
	}
	return nil
}

func (s *S3Store) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicURL + "/" + key
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// LocalStore 本地磁盘封面存储，文件由gin的/media静态路由对外提供
type LocalStore struct {
	dir       string
	publicURL string
	maxSize   int64
}

var _ book.CoverStore = (*LocalStore)(nil)

// NewLocalStore 创建本地存储，目录不存在时自动创建
func NewLocalStore(dir, publicURL string, maxSize int64) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, coverPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("创建封面目录失败: %w", err)
	}
	return &LocalStore{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxSize:   maxSize,
	}, nil
}

// Dir 存储根目录
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(_ context.Context, _ string, r io.Reader) (string, error) {
	c, err := readCover(r, s.maxSize)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(s.path(c.key), c.data, 0o644); err != nil {
		return "", apperrors.WrapWithCode(err, apperrors.ErrCodeStorageError, "保存封面失败")
	}
	return c.key, nil
}

// Delete 文件不存在视为已删除
func (s *LocalStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeStorageError, "删除封面失败")
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicURL + "/" + key
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key))
}

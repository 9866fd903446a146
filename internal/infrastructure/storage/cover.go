package storage

import (
	"bytes"
	"fmt"
	"io"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// coverPrefix 所有封面对象键的公共前缀
const coverPrefix = "covers"

// allowedCovers 允许上传的封面格式
var allowedCovers = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// cover 读入内存并通过校验的封面
type cover struct {
	key         string
	contentType string
	data        []byte
}

// readCover 读取上传内容，按文件头识别格式并生成对象键
// 超过maxSize返回ErrCoverTooLarge，非图片返回ErrUnsupportedCover
func readCover(r io.Reader, maxSize int64) (*cover, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeStorageError, "读取封面失败")
	}
	if int64(len(data)) > maxSize {
		return nil, book.ErrCoverTooLarge
	}

	mtype := mimetype.Detect(data)
	if !allowedCovers[mtype.String()] {
		return nil, book.ErrUnsupportedCover
	}

	return &cover{
		key:         path.Join(coverPrefix, uuid.NewString()+mtype.Extension()),
		contentType: mtype.String(),
		data:        data,
	}, nil
}

func (c *cover) reader() io.Reader {
	return bytes.NewReader(c.data)
}

// NewCoverStore 按storage.driver选择封面存储实现
func NewCoverStore(cfg *config.Config) (book.CoverStore, error) {
	switch cfg.Storage.Driver {
	case "local":
		return NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.PublicURL, cfg.Storage.MaxCoverSize)
	case "s3":
		return NewS3Store(cfg.Storage)
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Storage.Driver)
	}
}

package comment

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	// ErrEmptyContent 评论内容为空
	ErrEmptyContent = apperrors.New(apperrors.ErrCodeEmptyComment, "评论内容不能为空")

	// ErrContentTooLong 评论超长
	ErrContentTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "评论不能超过5000个字符")
)

package rating

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	// ErrInvalidScore 评分超出1-5范围
	ErrInvalidScore = apperrors.New(apperrors.ErrCodeInvalidScore, "评分必须在1到5之间")

	// ErrRatingNotFound 用户尚未评分
	ErrRatingNotFound = apperrors.New(apperrors.ErrCodeNotFound, "尚未评分")
)

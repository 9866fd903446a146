package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrTagNotFound 标签不存在
	ErrTagNotFound = apperrors.New(apperrors.ErrCodeTagNotFound, "标签不存在")

	// ErrNameDuplicate 分类或标签重名
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeNameDuplicate, "名称已存在")

	// ErrInvalidTitle 书名为空或过长
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空，且不超过100个字符")

	// ErrInvalidName 分类或标签名为空或过长
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "名称不能为空，且不超过50个字符")

	// ErrUnsupportedCover 封面不是jpeg/png/gif/webp图片
	ErrUnsupportedCover = apperrors.New(apperrors.ErrCodeUnsupportedCover, "封面只支持jpeg、png、gif、webp格式")

	// ErrCoverTooLarge 封面超过大小限制
	ErrCoverTooLarge = apperrors.New(apperrors.ErrCodeUnsupportedCover, "封面文件过大")

	// ErrForbidden 非作者无权修改或删除图书
	ErrForbidden = apperrors.New(apperrors.ErrCodeForbidden, "只有作者可以修改或删除此图书")
)

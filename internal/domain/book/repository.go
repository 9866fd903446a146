package book

import (
	"context"
	"io"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现
type Repository interface {
	// Create 创建图书(同时写入标签关联)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,包含分类、标签、作者名
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书,标签整体替换
	Update(ctx context.Context, book *Book) error

	// Delete 物理删除图书,评分、评论、标签关联一并删除
	Delete(ctx context.Context, id uint) error

	// Count 统计满足条件的图书数
	Count(ctx context.Context, criteria SearchCriteria) (int64, error)

	// Search 按条件查询一页图书,按创建时间倒序
	Search(ctx context.Context, criteria SearchCriteria, offset, limit int) ([]*Book, error)

	// ListByAuthor 查询某用户发布的全部图书
	ListByAuthor(ctx context.Context, authorID uint) ([]*Book, error)
}

// CategoryRepository 分类仓储
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	// List 按名称排序
	List(ctx context.Context) ([]Category, error)
}

// TagRepository 标签仓储
type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	// FindByIDs 批量查找,找不到的ID直接忽略
	FindByIDs(ctx context.Context, ids []uint) ([]Tag, error)
	List(ctx context.Context) ([]Tag, error)
}

// CoverStore 封面文件存储(本地磁盘或S3)
type CoverStore interface {
	// Save 保存封面并返回对象键
	// 格式按文件内容识别,不信任filename的扩展名
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	// URL 对象键对应的访问地址,key为空返回空串
	URL(key string) string
}

// SearchCriteria 列表查询条件,多个条件之间为AND
type SearchCriteria struct {
	Category string // 分类名精确匹配
	Tag      string // 标签名精确匹配
	Query    string // 在书名、描述、分类名、标签名中模糊查找(不区分大小写)
}

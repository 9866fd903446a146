package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 过滤条件用子查询/EXISTS表达,避免一对多JOIN造成重复行
const (
	categoryFilter = "books.category_id IN (SELECT id FROM categories WHERE name = ?)"
	tagFilter      = "EXISTS (SELECT 1 FROM book_tags bt JOIN tags t ON t.id = bt.tag_id WHERE bt.book_id = books.id AND t.name = ?)"
	searchFilter   = "(LOWER(books.title) LIKE ? ESCAPE '!'" +
		" OR LOWER(books.description) LIKE ? ESCAPE '!'" +
		" OR EXISTS (SELECT 1 FROM categories c WHERE c.id = books.category_id AND LOWER(c.name) LIKE ? ESCAPE '!')" +
		" OR EXISTS (SELECT 1 FROM book_tags bt JOIN tags t ON t.id = bt.tag_id WHERE bt.book_id = books.id AND LOWER(t.name) LIKE ? ESCAPE '!'))"
)

// bookRepository 图书仓储实现
// 负责domain实体与GORM模型之间的转换,并把数据库错误转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书,标签关联一并写入book_tags
// Tags.* 跳过对tags表本身的upsert,只写关联
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := dbFrom(ctx, r.db).Omit("Author", "Category", "Tags.*").Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := withRelations(dbFrom(ctx, r.db)).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书,标签整体替换
// Select显式列出字段,保证category_id置空也会写入
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&BookModel{ID: b.ID}).
			Select("title", "description", "cover_key", "category_id", "updated_at").
			Updates(model)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "更新图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}

		if err := tx.Model(&BookModel{ID: b.ID}).Association("Tags").Replace(model.Tags); err != nil {
			return apperrors.Wrap(err, "更新图书标签失败")
		}

		b.UpdatedAt = model.UpdatedAt
		return nil
	})
}

// Delete 物理删除图书
// 外键已声明ON DELETE CASCADE,这里仍在事务内显式删除子表,不依赖数据库是否开启外键检查
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&RatingModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除图书评分失败")
		}
		if err := tx.Where("book_id = ?", id).Delete(&CommentModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除图书评论失败")
		}
		if err := tx.Model(&BookModel{ID: id}).Association("Tags").Clear(); err != nil {
			return apperrors.Wrap(err, "删除图书标签失败")
		}

		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return nil
	})
}

// Count 统计满足条件的图书数
func (r *bookRepository) Count(ctx context.Context, criteria book.SearchCriteria) (int64, error) {
	var total int64
	if err := r.filtered(ctx, criteria).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "查询图书总数失败")
	}
	return total, nil
}

// Search 查询一页图书,最新发布的在前
func (r *bookRepository) Search(ctx context.Context, criteria book.SearchCriteria, offset, limit int) ([]*book.Book, error) {
	var models []BookModel
	err := withRelations(r.filtered(ctx, criteria)).
		Order("books.created_at DESC").
		Order("books.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	return toBookEntities(models), nil
}

// ListByAuthor 某用户发布的全部图书
func (r *bookRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*book.Book, error) {
	var models []BookModel
	err := withRelations(dbFrom(ctx, r.db)).
		Where("books.author_id = ?", authorID).
		Order("books.created_at DESC").
		Order("books.id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户图书失败")
	}

	return toBookEntities(models), nil
}

// filtered 组装列表过滤条件,多个条件之间为AND
func (r *bookRepository) filtered(ctx context.Context, c book.SearchCriteria) *gorm.DB {
	query := dbFrom(ctx, r.db).Model(&BookModel{})

	if c.Category != "" {
		query = query.Where(categoryFilter, c.Category)
	}
	if c.Tag != "" {
		query = query.Where(tagFilter, c.Tag)
	}
	if c.Query != "" {
		p := likePattern(c.Query)
		query = query.Where(searchFilter, p, p, p, p)
	}

	return query
}

// withRelations 预加载分类、标签(按名称排序)、作者
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		}).
		Preload("Author")
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	model := &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		CoverKey:    b.CoverKey,
		AuthorID:    b.AuthorID,
		Tags:        make([]TagModel, 0, len(b.Tags)),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Category != nil {
		id := b.Category.ID
		model.CategoryID = &id
	}
	for _, t := range b.Tags {
		model.Tags = append(model.Tags, TagModel{ID: t.ID, Name: t.Name})
	}
	return model
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		CoverKey:    model.CoverKey,
		AuthorID:    model.AuthorID,
		Tags:        make([]book.Tag, 0, len(model.Tags)),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.Category != nil {
		b.Category = &book.Category{ID: model.Category.ID, Name: model.Category.Name}
	}
	if model.Author != nil {
		b.AuthorName = model.Author.Username
	}
	for _, t := range model.Tags {
		b.Tags = append(b.Tags, book.Tag{ID: t.ID, Name: t.Name})
	}
	return b
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}

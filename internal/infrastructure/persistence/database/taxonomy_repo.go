package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) book.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *book.Category) error {
	model := &CategoryModel{Name: c.Name}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}
	c.ID = model.ID
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*book.Category, error) {
	var model CategoryModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return &book.Category{ID: model.ID, Name: model.Name}, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]book.Category, error) {
	var models []CategoryModel
	if err := dbFrom(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}
	out := make([]book.Category, len(models))
	for i, m := range models {
		out[i] = book.Category{ID: m.ID, Name: m.Name}
	}
	return out, nil
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓储
func NewTagRepository(db *gorm.DB) book.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, t *book.Tag) error {
	model := &TagModel{Name: t.Name}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建标签失败")
	}
	t.ID = model.ID
	return nil
}

func (r *tagRepository) FindByIDs(ctx context.Context, ids []uint) ([]book.Tag, error) {
	if len(ids) == 0 {
		return []book.Tag{}, nil
	}
	var models []TagModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", ids).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询标签失败")
	}
	return toTags(models), nil
}

func (r *tagRepository) List(ctx context.Context) ([]book.Tag, error) {
	var models []TagModel
	if err := dbFrom(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询标签列表失败")
	}
	return toTags(models), nil
}

func toTags(models []TagModel) []book.Tag {
	out := make([]book.Tag, len(models))
	for i, m := range models {
		out[i] = book.Tag{ID: m.ID, Name: m.Name}
	}
	return out
}

package book

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

const (
	maxTitleLength = 100
	maxNameLength  = 50
)

// Input 发布/编辑图书的输入(ID引用,由领域服务解析为实体)
type Input struct {
	Title       string
	Description string
	CategoryID  uint // 0表示不设置分类
	TagIDs      []uint
	CoverKey    string
}

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// PublishBook 发布图书
	// 业务规则:书名必填,分类和标签必须已存在
	PublishBook(ctx context.Context, authorID uint, input Input) (*Book, error)

	// GetBook 根据ID获取图书详情
	GetBook(ctx context.Context, id uint) (*Book, error)

	// Authorize 加载图书并校验当前用户是否为作者
	Authorize(ctx context.Context, id, userID uint) (*Book, error)

	// UpdateBook 编辑图书,只有作者本人可以修改
	UpdateBook(ctx context.Context, id, userID uint, input Input) (*Book, error)

	// DeleteBook 删除图书,只有作者本人可以删除,返回被删除的图书
	DeleteBook(ctx context.Context, id, userID uint) (*Book, error)

	// Search 条件查询并分页,页码越界时自动修正
	Search(ctx context.Context, criteria SearchCriteria, pageSize, page int) ([]*Book, pagination.Page, error)

	// ListByAuthor 某用户发布的图书
	ListByAuthor(ctx context.Context, authorID uint) ([]*Book, error)

	Categories(ctx context.Context) ([]Category, error)
	Tags(ctx context.Context) ([]Tag, error)
	CreateCategory(ctx context.Context, name string) (*Category, error)
	CreateTag(ctx context.Context, name string) (*Tag, error)
}

type service struct {
	repo       Repository
	categories CategoryRepository
	tags       TagRepository
}

// NewService 创建图书领域服务
func NewService(repo Repository, categories CategoryRepository, tags TagRepository) Service {
	return &service{repo: repo, categories: categories, tags: tags}
}

func (s *service) PublishBook(ctx context.Context, authorID uint, input Input) (*Book, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	category, tags, err := s.resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	book := NewBook(input.Title, input.Description, authorID, category, tags)
	book.CoverKey = input.CoverKey

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Authorize(ctx context.Context, id, userID uint) (*Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !book.CanModify(userID) {
		return book, ErrForbidden
	}
	return book, nil
}

func (s *service) UpdateBook(ctx context.Context, id, userID uint, input Input) (*Book, error) {
	book, err := s.Authorize(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	category, tags, err := s.resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	book.ApplyChanges(Changes{
		Title:       input.Title,
		Description: input.Description,
		Category:    category,
		Tags:        tags,
		CoverKey:    input.CoverKey,
	})

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) DeleteBook(ctx context.Context, id, userID uint) (*Book, error) {
	book, err := s.Authorize(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return book, nil
}

// Search 先COUNT再修正页码,保证越界页码返回最后一页而不是空列表
func (s *service) Search(ctx context.Context, criteria SearchCriteria, pageSize, page int) ([]*Book, pagination.Page, error) {
	criteria.Category = strings.TrimSpace(criteria.Category)
	criteria.Tag = strings.TrimSpace(criteria.Tag)
	criteria.Query = strings.TrimSpace(criteria.Query)

	total, err := s.repo.Count(ctx, criteria)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	p := pagination.Resolve(total, pageSize, page)
	if total == 0 {
		return []*Book{}, p, nil
	}

	books, err := s.repo.Search(ctx, criteria, p.Offset(), p.Size)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return books, p, nil
}

func (s *service) ListByAuthor(ctx context.Context, authorID uint) ([]*Book, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

func (s *service) Categories(ctx context.Context) ([]Category, error) {
	return s.categories.List(ctx)
}

func (s *service) Tags(ctx context.Context) ([]Tag, error) {
	return s.tags.List(ctx)
}

func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	c := &Category{Name: name}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) CreateTag(ctx context.Context, name string) (*Tag, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	t := &Tag{Name: name}
	if err := s.tags.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// resolve 把输入中的分类ID、标签ID解析为实体,任一不存在即报错
func (s *service) resolve(ctx context.Context, input Input) (*Category, []Tag, error) {
	var category *Category
	if input.CategoryID != 0 {
		c, err := s.categories.FindByID(ctx, input.CategoryID)
		if err != nil {
			return nil, nil, err
		}
		category = c
	}

	ids := uniqueIDs(input.TagIDs)
	if len(ids) == 0 {
		return category, []Tag{}, nil
	}

	tags, err := s.tags.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(ids) {
		return nil, nil, ErrTagNotFound
	}
	return category, tags, nil
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package book

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo 内存版仓储,只实现服务测试需要的行为
type memRepo struct {
	books   map[uint]*Book
	nextID  uint
	deleted []uint
}

func newMemRepo() *memRepo { return &memRepo{books: map[uint]*Book{}} }

func (r *memRepo) Create(_ context.Context, b *Book) error {
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) Update(_ context.Context, b *Book) error {
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uint) error {
	delete(r.books, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *memRepo) Count(_ context.Context, _ SearchCriteria) (int64, error) {
	return int64(len(r.books)), nil
}

func (r *memRepo) Search(_ context.Context, _ SearchCriteria, offset, limit int) ([]*Book, error) {
	ids := make([]int, 0, len(r.books))
	for id := range r.books {
		ids = append(ids, int(id))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	var out []*Book
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, r.books[uint(ids[i])])
	}
	return out, nil
}

func (r *memRepo) ListByAuthor(_ context.Context, authorID uint) ([]*Book, error) {
	var out []*Book
	for _, b := range r.books {
		if b.AuthorID == authorID {
			out = append(out, b)
		}
	}
	return out, nil
}

type memCategories struct{ items []Category }

func (m *memCategories) Create(_ context.Context, c *Category) error {
	for _, existing := range m.items {
		if existing.Name == c.Name {
			return ErrNameDuplicate
		}
	}
	c.ID = uint(len(m.items) + 1)
	m.items = append(m.items, *c)
	return nil
}

func (m *memCategories) FindByID(_ context.Context, id uint) (*Category, error) {
	for _, c := range m.items {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (m *memCategories) List(_ context.Context) ([]Category, error) { return m.items, nil }

type memTags struct{ items []Tag }

func (m *memTags) Create(_ context.Context, t *Tag) error {
	t.ID = uint(len(m.items) + 1)
	m.items = append(m.items, *t)
	return nil
}

func (m *memTags) FindByIDs(_ context.Context, ids []uint) ([]Tag, error) {
	var out []Tag
	for _, t := range m.items {
		for _, id := range ids {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (m *memTags) List(_ context.Context) ([]Tag, error) { return m.items, nil }

func newTestService(t *testing.T) (Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	cats := &memCategories{items: []Category{{ID: 1, Name: "Fiction"}}}
	tags := &memTags{items: []Tag{{ID: 1, Name: "dragons"}, {ID: 2, Name: "sea"}}}
	return NewService(repo, cats, tags), repo
}

func TestPublishBook(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.PublishBook(ctx, 7, Input{
		Title:      "  Dragonrider ",
		CategoryID: 1,
		TagIDs:     []uint{1, 1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dragonrider", b.Title)
	assert.Equal(t, "Fiction", b.CategoryName())
	assert.ElementsMatch(t, []string{"dragons", "sea"}, b.TagNames())
	assert.Equal(t, uint(7), b.AuthorID)
}

func TestPublishBook_Validation(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.PublishBook(ctx, 7, Input{Title: "   "})
	assert.ErrorIs(t, err, ErrInvalidTitle)

	_, err = svc.PublishBook(ctx, 7, Input{Title: "A", CategoryID: 99})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = svc.PublishBook(ctx, 7, Input{Title: "A", TagIDs: []uint{1, 42}})
	assert.ErrorIs(t, err, ErrTagNotFound)

	assert.Empty(t, repo.books, "校验失败不应写入任何数据")
}

func TestPublishBook_NoCategory(t *testing.T) {
	svc, _ := newTestService(t)

	b, err := svc.PublishBook(context.Background(), 7, Input{Title: "Loose"})
	require.NoError(t, err)
	assert.Equal(t, UncategorizedName, b.CategoryName())
}

func TestUpdateBook_NonAuthorLeavesBookUnchanged(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	b, err := svc.PublishBook(ctx, 7, Input{Title: "Original"})
	require.NoError(t, err)

	_, err = svc.UpdateBook(ctx, b.ID, 8, Input{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "Original", repo.books[b.ID].Title)

	updated, err := svc.UpdateBook(ctx, b.ID, 7, Input{Title: "Revised", CategoryID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Revised", updated.Title)
	assert.Equal(t, "Fiction", repo.books[b.ID].CategoryName())
}

func TestDeleteBook_Authorization(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	b, err := svc.PublishBook(ctx, 7, Input{Title: "Mine"})
	require.NoError(t, err)

	_, err = svc.DeleteBook(ctx, b.ID, 8)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Contains(t, repo.books, b.ID)

	_, err = svc.DeleteBook(ctx, b.ID, 7)
	require.NoError(t, err)
	assert.NotContains(t, repo.books, b.ID)

	_, err = svc.DeleteBook(ctx, 999, 7)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestSearch_ClampsPage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C", "D", "E"} {
		_, err := svc.PublishBook(ctx, 1, Input{Title: title})
		require.NoError(t, err)
	}

	books, page, err := svc.Search(ctx, SearchCriteria{}, 2, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.Number)
	require.Len(t, books, 1)
	assert.Equal(t, "A", books[0].Title)
}

func TestCreateCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, " Poetry ")
	require.NoError(t, err)
	assert.Equal(t, "Poetry", c.Name)

	_, err = svc.CreateCategory(ctx, "Fiction")
	assert.ErrorIs(t, err, ErrNameDuplicate)

	_, err = svc.CreateTag(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestCanModify(t *testing.T) {
	b := &Book{AuthorID: 3}
	assert.True(t, b.CanModify(3))
	assert.False(t, b.CanModify(4))
	assert.False(t, (&Book{}).CanModify(0))
}

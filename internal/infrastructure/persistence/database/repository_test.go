package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/testutil"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type fixture struct {
	db       *gorm.DB
	books    book.Repository
	ratings  rating.Repository
	comments comment.Repository
	author   *database.UserModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{
		db:       db,
		books:    database.NewBookRepository(db),
		ratings:  database.NewRatingRepository(db),
		comments: database.NewCommentRepository(db),
		author:   testutil.CreateUser(t, db, "author"),
	}
}

func (f *fixture) createBook(t *testing.T, title, description string, category *database.CategoryModel, tags ...*database.TagModel) *book.Book {
	t.Helper()
	b := book.NewBook(title, description, f.author.ID, nil, nil)
	if category != nil {
		b.Category = &book.Category{ID: category.ID, Name: category.Name}
	}
	for _, tag := range tags {
		b.Tags = append(b.Tags, book.Tag{ID: tag.ID, Name: tag.Name})
	}
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func titles(books []*book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestBookRepository_CreateAndFind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fiction := testutil.CreateCategory(t, f.db, "Fiction")
	dragons := testutil.CreateTag(t, f.db, "dragons")

	created := f.createBook(t, "Dragonrider", "<p>wings</p>", fiction, dragons)

	found, err := f.books.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dragonrider", found.Title)
	assert.Equal(t, "<p>wings</p>", found.Description)
	assert.Equal(t, "Fiction", found.CategoryName())
	assert.Equal(t, []string{"dragons"}, found.TagNames())
	assert.Equal(t, "author", found.AuthorName)

	_, err = f.books.FindByID(ctx, 999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepository_CategoryFilterIsExact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fiction := testutil.CreateCategory(t, f.db, "Fiction")
	nonFiction := testutil.CreateCategory(t, f.db, "Non-Fiction")

	f.createBook(t, "Dragonrider", "", fiction)
	f.createBook(t, "Atlas", "", nonFiction)
	f.createBook(t, "Loose", "", nil)

	criteria := book.SearchCriteria{Category: "Fiction"}
	total, err := f.books.Count(ctx, criteria)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	books, err := f.books.Search(ctx, criteria, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dragonrider"}, titles(books))
}

func TestBookRepository_QuerySearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fantasy := testutil.CreateCategory(t, f.db, "Fantasy")
	dragons := testutil.CreateTag(t, f.db, "dragons")
	drama := testutil.CreateTag(t, f.db, "drama")

	f.createBook(t, "Dragonrider", "a tale of wings", nil)
	f.createBook(t, "Seafarer", "a tale of boats", nil)
	f.createBook(t, "Quiet Hills", "", nil, dragons, drama)
	f.createBook(t, "Old Roads", "", fantasy)
	f.createBook(t, "Discount 100%", "", nil)
	f.createBook(t, "Émile", "", nil)

	tests := []struct {
		query string
		want  []string
	}{
		{"drag", []string{"Quiet Hills", "Dragonrider"}},
		{"DRAG", []string{"Quiet Hills", "Dragonrider"}},
		{"boats", []string{"Seafarer"}},
		{"fanta", []string{"Old Roads"}},
		// 两个标签都匹配时只返回一次
		{"dra", []string{"Quiet Hills", "Dragonrider"}},
		{"100%", []string{"Discount 100%"}},
		{"%", []string{"Discount 100%"}},
		{"émile", []string{"Émile"}},
		{"ÉMILE", []string{"Émile"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			criteria := book.SearchCriteria{Query: tt.query}
			books, err := f.books.Search(ctx, criteria, 0, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(books))

			total, err := f.books.Count(ctx, criteria)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
		})
	}
}

func TestBookRepository_FiltersAreANDed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fiction := testutil.CreateCategory(t, f.db, "Fiction")
	dragons := testutil.CreateTag(t, f.db, "dragons")

	f.createBook(t, "Dragonrider", "", fiction, dragons)
	f.createBook(t, "Dragon Atlas", "", nil, dragons)
	f.createBook(t, "Seafarer", "", fiction)

	books, err := f.books.Search(ctx, book.SearchCriteria{Category: "Fiction", Tag: "dragons", Query: "rider"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dragonrider"}, titles(books))

	books, err = f.books.Search(ctx, book.SearchCriteria{Tag: "dragons"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dragon Atlas", "Dragonrider"}, titles(books))
}

func TestBookRepository_PagesNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, title := range []string{"B1", "B2", "B3", "B4", "B5"} {
		f.createBook(t, title, "", nil)
	}

	first, err := f.books.Search(ctx, book.SearchCriteria{}, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"B5", "B4"}, titles(first))

	last, err := f.books.Search(ctx, book.SearchCriteria{}, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"B1"}, titles(last))
}

func TestBookRepository_UpdateReplacesTagsAndCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fiction := testutil.CreateCategory(t, f.db, "Fiction")
	dragons := testutil.CreateTag(t, f.db, "dragons")
	sea := testutil.CreateTag(t, f.db, "sea")

	b := f.createBook(t, "Dragonrider", "", fiction, dragons)

	b.ApplyChanges(book.Changes{
		Title: "Seafarer",
		Tags:  []book.Tag{{ID: sea.ID, Name: sea.Name}},
	})
	require.NoError(t, f.books.Update(ctx, b))

	found, err := f.books.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seafarer", found.Title)
	assert.Nil(t, found.Category)
	assert.Equal(t, []string{"sea"}, found.TagNames())
}

func TestBookRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dragons := testutil.CreateTag(t, f.db, "dragons")
	reader := testutil.CreateUser(t, f.db, "reader")

	doomed := f.createBook(t, "Doomed", "", nil, dragons)
	kept := f.createBook(t, "Kept", "", nil, dragons)

	for _, id := range []uint{doomed.ID, kept.ID} {
		require.NoError(t, f.ratings.Upsert(ctx, &rating.Rating{UserID: reader.ID, BookID: id, Score: 4}))
		require.NoError(t, f.comments.Create(ctx, comment.NewComment(reader.ID, id, "nice")))
	}

	require.NoError(t, f.books.Delete(ctx, doomed.ID))

	_, err := f.books.FindByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	var n int64
	f.db.Model(&database.RatingModel{}).Where("book_id = ?", doomed.ID).Count(&n)
	assert.Zero(t, n)
	f.db.Model(&database.CommentModel{}).Where("book_id = ?", doomed.ID).Count(&n)
	assert.Zero(t, n)
	f.db.Table("book_tags").Where("book_id = ?", doomed.ID).Count(&n)
	assert.Zero(t, n)

	f.db.Model(&database.RatingModel{}).Where("book_id = ?", kept.ID).Count(&n)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, f.books.Delete(ctx, doomed.ID), book.ErrBookNotFound)
}

func TestRatingRepository_UpsertKeepsSingleRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := testutil.CreateUser(t, f.db, "reader")
	b := f.createBook(t, "Dragonrider", "", nil)

	require.NoError(t, f.ratings.Upsert(ctx, &rating.Rating{UserID: reader.ID, BookID: b.ID, Score: 3}))
	require.NoError(t, f.ratings.Upsert(ctx, &rating.Rating{UserID: reader.ID, BookID: b.ID, Score: 5}))

	var n int64
	f.db.Model(&database.RatingModel{}).Where("user_id = ? AND book_id = ?", reader.ID, b.ID).Count(&n)
	assert.Equal(t, int64(1), n)

	got, err := f.ratings.FindByUserAndBook(ctx, reader.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Score)

	_, err = f.ratings.FindByUserAndBook(ctx, f.author.ID, b.ID)
	assert.ErrorIs(t, err, rating.ErrRatingNotFound)
}

func TestRatingRepository_ScoreCheckConstraint(t *testing.T) {
	f := newFixture(t)
	reader := testutil.CreateUser(t, f.db, "reader")
	b := f.createBook(t, "Dragonrider", "", nil)

	err := f.ratings.Upsert(context.Background(), &rating.Rating{UserID: reader.ID, BookID: b.ID, Score: 9})
	assert.Error(t, err)
}

func TestRatingRepository_Summaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rated := f.createBook(t, "Rated", "", nil)
	unrated := f.createBook(t, "Unrated", "", nil)

	for i, score := range []int{3, 4, 5} {
		u := testutil.CreateUser(t, f.db, "reader"+string(rune('a'+i)))
		require.NoError(t, f.ratings.Upsert(ctx, &rating.Rating{UserID: u.ID, BookID: rated.ID, Score: score}))
	}

	sums, err := f.ratings.Summaries(ctx, []uint{rated.ID, unrated.ID})
	require.NoError(t, err)

	require.Contains(t, sums, rated.ID)
	require.NotNil(t, sums[rated.ID].Average)
	assert.InDelta(t, 4.0, *sums[rated.ID].Average, 1e-9)
	assert.Equal(t, int64(3), sums[rated.ID].Count)
	assert.NotContains(t, sums, unrated.ID)
}

func TestCommentRepository_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := testutil.CreateUser(t, f.db, "reader")
	b := f.createBook(t, "Dragonrider", "", nil)

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, f.comments.Create(ctx, comment.NewComment(reader.ID, b.ID, text)))
	}

	list, err := f.comments.ListByBook(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Content)
	assert.Equal(t, "first", list[2].Content)
	assert.Equal(t, "reader", list[0].Username)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := testutil.NewDB(t)
	repo := database.NewUserRepository(db)
	ctx := context.Background()

	alice := user.NewUser("alice", "", "hash")
	require.NoError(t, repo.Create(ctx, alice))
	assert.ErrorIs(t, repo.Create(ctx, user.NewUser("alice", "", "hash")), apperrors.ErrUsernameDuplicate)

	bob := user.NewUser("bob", "", "hash")
	require.NoError(t, repo.Create(ctx, bob))

	bob.UpdateProfile(user.Profile{Username: "alice"})
	assert.ErrorIs(t, repo.Update(ctx, bob), apperrors.ErrUsernameDuplicate)

	alice.UpdateProfile(user.Profile{Username: "alice", FirstName: "Alice", Email: "a@example.com"})
	require.NoError(t, repo.Update(ctx, alice))

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.FirstName)
	assert.Equal(t, "a@example.com", found.Email)
}

func TestTaxonomyRepositories(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	categories := database.NewCategoryRepository(db)
	tags := database.NewTagRepository(db)

	for _, name := range []string{"Poetry", "Fiction"} {
		require.NoError(t, categories.Create(ctx, &book.Category{Name: name}))
	}
	assert.ErrorIs(t, categories.Create(ctx, &book.Category{Name: "Fiction"}), book.ErrNameDuplicate)

	list, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Fiction", list[0].Name)

	_, err = categories.FindByID(ctx, 99)
	assert.ErrorIs(t, err, book.ErrCategoryNotFound)

	sea := &book.Tag{Name: "sea"}
	require.NoError(t, tags.Create(ctx, sea))
	found, err := tags.FindByIDs(ctx, []uint{sea.ID, 42})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestTxManager_RollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	tx := database.NewTxManager(db)
	categories := database.NewCategoryRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		if err := categories.Create(ctx, &book.Category{Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := categories.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

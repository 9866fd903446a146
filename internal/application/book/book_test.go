package book_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/testutil"
)

type fixture struct {
	db        *gorm.DB
	books     book.Service
	ratings   rating.Service
	comments  comment.Service
	covers    *testutil.MemoryCovers
	publisher *testutil.RecordingPublisher

	list    *appbook.ListBooksUseCase
	detail  *appbook.BookDetailUseCase
	publish *appbook.PublishBookUseCase
	update  *appbook.UpdateBookUseCase
	remove  *appbook.DeleteBookUseCase
	review  *appbook.ReviewBookUseCase
	mine    *appbook.AuthorBooksUseCase

	author  uint
	visitor uint
}

func newFixture(t *testing.T, pageSize int) *fixture {
	db := testutil.NewDB(t)
	log := zap.NewNop()

	f := &fixture{
		db:        db,
		books:     book.NewService(database.NewBookRepository(db), database.NewCategoryRepository(db), database.NewTagRepository(db)),
		ratings:   rating.NewService(database.NewRatingRepository(db)),
		comments:  comment.NewService(database.NewCommentRepository(db)),
		covers:    testutil.NewMemoryCovers(),
		publisher: &testutil.RecordingPublisher{},
	}

	cfg := &config.Config{Catalog: config.CatalogConfig{PageSize: pageSize}}
	f.list = appbook.NewListBooksUseCase(f.books, f.ratings, f.covers, cfg)
	f.detail = appbook.NewBookDetailUseCase(f.books, f.ratings, f.comments, f.covers)
	f.publish = appbook.NewPublishBookUseCase(f.books, f.covers, f.publisher, log)
	f.update = appbook.NewUpdateBookUseCase(f.books, f.covers, f.publisher, log)
	f.remove = appbook.NewDeleteBookUseCase(f.books, f.covers, f.publisher, log)
	f.review = appbook.NewReviewBookUseCase(f.books, f.ratings, f.comments, database.NewTxManager(db), f.publisher, log)
	f.mine = appbook.NewAuthorBooksUseCase(f.books, f.ratings, f.covers)

	f.author = testutil.CreateUser(t, db, "author").ID
	f.visitor = testutil.CreateUser(t, db, "visitor").ID
	return f
}

func (f *fixture) publishBook(t *testing.T, req appbook.PublishBookRequest) uint {
	t.Helper()
	if req.AuthorID == 0 {
		req.AuthorID = f.author
	}
	resp, err := f.publish.Execute(context.Background(), req)
	require.NoError(t, err)
	return resp.ID
}

func intPtr(v int) *int { return &v }

func TestListBooks_PageClamping(t *testing.T) {
	f := newFixture(t, 2)
	for i := 1; i <= 5; i++ {
		f.publishBook(t, appbook.PublishBookRequest{Title: fmt.Sprintf("B%d", i)})
	}
	ctx := context.Background()

	cases := []struct {
		raw      string
		wantPage int
		wantLen  int
	}{
		{"", 1, 2},
		{"abc", 1, 2},
		{"-3", 1, 2},
		{"2", 2, 2},
		{"3", 3, 1},
		{"99", 3, 1},
		{"99999999999999999999", 3, 1},
		{"-99999999999999999999", 1, 2},
	}
	for _, tc := range cases {
		t.Run("page="+tc.raw, func(t *testing.T) {
			resp, err := f.list.Execute(ctx, appbook.ListBooksRequest{Page: tc.raw})
			require.NoError(t, err)
			assert.Equal(t, tc.wantPage, resp.Page.Number)
			assert.Equal(t, 3, resp.Page.TotalPages)
			assert.Len(t, resp.Books, tc.wantLen)
		})
	}
}

func TestListBooks_EmptyResultIsFirstPage(t *testing.T) {
	f := newFixture(t, 6)

	resp, err := f.list.Execute(context.Background(), appbook.ListBooksRequest{Query: "nothing", Page: "7"})
	require.NoError(t, err)
	assert.Empty(t, resp.Books)
	assert.Equal(t, 1, resp.Page.Number)
	assert.Equal(t, 1, resp.Page.TotalPages)
	assert.Equal(t, "nothing", resp.SearchQuery)
}

func TestListBooks_AverageIsNullWithoutRatings(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()

	rated := f.publishBook(t, appbook.PublishBookRequest{Title: "Rated"})
	f.publishBook(t, appbook.PublishBookRequest{Title: "Unrated"})

	for i, score := range []int{3, 4, 5} {
		u := testutil.CreateUser(t, f.db, fmt.Sprintf("reader%d", i))
		_, err := f.review.Execute(ctx, appbook.ReviewBookRequest{BookID: rated, UserID: u.ID, Score: intPtr(score)})
		require.NoError(t, err)
	}

	resp, err := f.list.Execute(ctx, appbook.ListBooksRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Books, 2)

	byTitle := map[string]appbook.BookItem{}
	for _, b := range resp.Books {
		byTitle[b.Title] = b
	}
	require.NotNil(t, byTitle["Rated"].AverageRating)
	assert.InDelta(t, 4.0, *byTitle["Rated"].AverageRating, 1e-9)
	assert.Equal(t, int64(3), byTitle["Rated"].RatingCount)
	assert.Nil(t, byTitle["Unrated"].AverageRating)
	assert.Zero(t, byTitle["Unrated"].RatingCount)
}

func TestListBooks_FiltersAndTaxonomy(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()

	fiction := testutil.CreateCategory(t, f.db, "Fiction")
	testutil.CreateCategory(t, f.db, "Biography")
	sea := testutil.CreateTag(t, f.db, "sea")

	f.publishBook(t, appbook.PublishBookRequest{Title: "Dragonrider", CategoryID: fiction.ID})
	f.publishBook(t, appbook.PublishBookRequest{Title: "Seafarer", TagIDs: []uint{sea.ID}})

	resp, err := f.list.Execute(ctx, appbook.ListBooksRequest{Category: "Fiction"})
	require.NoError(t, err)
	require.Len(t, resp.Books, 1)
	assert.Equal(t, "Dragonrider", resp.Books[0].Title)
	assert.Equal(t, "Fiction", resp.Category)

	resp, err = f.list.Execute(ctx, appbook.ListBooksRequest{Query: "drag"})
	require.NoError(t, err)
	require.Len(t, resp.Books, 1)
	assert.Equal(t, "Dragonrider", resp.Books[0].Title)

	resp, err = f.list.Execute(ctx, appbook.ListBooksRequest{Tag: "sea"})
	require.NoError(t, err)
	require.Len(t, resp.Books, 1)
	assert.Equal(t, "Seafarer", resp.Books[0].Title)
	assert.Equal(t, book.UncategorizedName, resp.Books[0].Category)

	require.Len(t, resp.Taxonomy.Categories, 2)
	assert.Equal(t, "Biography", resp.Taxonomy.Categories[0].Name)
	assert.Equal(t, "Fiction", resp.Taxonomy.Categories[1].Name)
}

func TestListBooks_SearchFoldsUnicodeCase(t *testing.T) {
	f := newFixture(t, 6)
	f.publishBook(t, appbook.PublishBookRequest{Title: "Émile"})
	f.publishBook(t, appbook.PublishBookRequest{Title: "Seafarer"})

	resp, err := f.list.Execute(context.Background(), appbook.ListBooksRequest{Query: "émile"})
	require.NoError(t, err)
	require.Len(t, resp.Books, 1)
	assert.Equal(t, "Émile", resp.Books[0].Title)
}

func TestBookDetail(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()
	id := f.publishBook(t, appbook.PublishBookRequest{Title: "Dune"})

	_, err := f.review.Execute(ctx, appbook.ReviewBookRequest{BookID: id, UserID: f.visitor, Score: intPtr(4), Content: "first"})
	require.NoError(t, err)
	_, err = f.review.Execute(ctx, appbook.ReviewBookRequest{BookID: id, UserID: f.visitor, Content: "second"})
	require.NoError(t, err)

	resp, err := f.detail.Execute(ctx, appbook.BookDetailRequest{BookID: id, UserID: f.visitor})
	require.NoError(t, err)
	assert.False(t, resp.CanModify)
	require.NotNil(t, resp.UserRating)
	assert.Equal(t, 4, *resp.UserRating)
	require.Len(t, resp.Comments, 2)
	assert.Equal(t, "second", resp.Comments[0].Content)
	assert.Equal(t, "visitor", resp.Comments[0].Username)

	resp, err = f.detail.Execute(ctx, appbook.BookDetailRequest{BookID: id, UserID: f.author})
	require.NoError(t, err)
	assert.True(t, resp.CanModify)
	assert.Nil(t, resp.UserRating)
	assert.Equal(t, "author", resp.Book.Author)

	resp, err = f.detail.Execute(ctx, appbook.BookDetailRequest{BookID: id})
	require.NoError(t, err)
	assert.False(t, resp.CanModify)
	assert.Nil(t, resp.UserRating)

	_, err = f.detail.Execute(ctx, appbook.BookDetailRequest{BookID: 999})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestReviewBook_RatingUpsert(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()
	id := f.publishBook(t, appbook.PublishBookRequest{Title: "Dune"})

	for _, score := range []int{3, 5} {
		resp, err := f.review.Execute(ctx, appbook.ReviewBookRequest{BookID: id, UserID: f.visitor, Score: intPtr(score)})
		require.NoError(t, err)
		assert.True(t, resp.Rated)
		assert.False(t, resp.Commented)
	}

	var rows []database.RatingModel
	require.NoError(t, f.db.Where("book_id = ?", id).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Score)
}

func TestReviewBook_InvalidScoreStillSavesComment(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()
	id := f.publishBook(t, appbook.PublishBookRequest{Title: "Dune"})
	f.publisher.Events = nil

	resp, err := f.review.Execute(ctx, appbook.ReviewBookRequest{
		BookID: id, UserID: f.visitor, Score: intPtr(9), Content: "  great read  ",
	})
	require.NoError(t, err)
	assert.False(t, resp.Rated)
	assert.True(t, resp.Commented)

	var ratingCount int64
	require.NoError(t, f.db.Model(&database.RatingModel{}).Count(&ratingCount).Error)
	assert.Zero(t, ratingCount)

	comments, err := f.comments.ListByBook(ctx, id)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "great read", comments[0].Content)

	assert.Equal(t, []string{event.CommentCreated}, f.publisher.Names())
}

func TestReviewBook_BlankCommentIgnored(t *testing.T) {
	f := newFixture(t, 6)
	id := f.publishBook(t, appbook.PublishBookRequest{Title: "Dune"})

	resp, err := f.review.Execute(context.Background(), appbook.ReviewBookRequest{BookID: id, UserID: f.visitor, Content: "   "})
	require.NoError(t, err)
	assert.False(t, resp.Rated)
	assert.False(t, resp.Commented)
}

func TestReviewBook_TooLongCommentRollsBackRating(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()
	id := f.publishBook(t, appbook.PublishBookRequest{Title: "Dune"})

	_, err := f.review.Execute(ctx, appbook.ReviewBookRequest{
		BookID: id, UserID: f.visitor, Score: intPtr(4), Content: strings.Repeat("x", comment.MaxContentLength+1),
	})
	assert.ErrorIs(t, err, comment.ErrContentTooLong)

	score, err := f.ratings.UserScore(ctx, f.visitor, id)
	require.NoError(t, err)
	assert.Nil(t, score)
}

func TestReviewBook_UnknownBook(t *testing.T) {
	f := newFixture(t, 6)
	_, err := f.review.Execute(context.Background(), appbook.ReviewBookRequest{BookID: 42, UserID: f.visitor, Score: intPtr(3)})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestPublishBook_WithCover(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()

	id := f.publishBook(t, appbook.PublishBookRequest{
		Title: "Dune",
		Cover: &appbook.Cover{Filename: "dune.png", Content: strings.NewReader("png-bytes")},
	})

	assert.Equal(t, 1, f.covers.Len())
	resp, err := f.detail.Execute(ctx, appbook.BookDetailRequest{BookID: id})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Book.CoverURL, "/media/covers/"))
	assert.Equal(t, []string{event.BookPublished}, f.publisher.Names())
}

func TestPublishBook_CompensatesCoverOnValidationFailure(t *testing.T) {
	f := newFixture(t, 6)

	_, err := f.publish.Execute(context.Background(), appbook.PublishBookRequest{
		AuthorID: f.author,
		Title:    "   ",
		Cover:    &appbook.Cover{Filename: "x.png", Content: strings.NewReader("png-bytes")},
	})
	assert.ErrorIs(t, err, book.ErrInvalidTitle)

	assert.Zero(t, f.covers.Len(), "封面应被补偿删除")
	assert.Len(t, f.covers.Deleted, 1)
	assert.Empty(t, f.publisher.Events)
}

func TestPublishBook_UnknownTag(t *testing.T) {
	f := newFixture(t, 6)
	_, err := f.publish.Execute(context.Background(), appbook.PublishBookRequest{AuthorID: f.author, Title: "Dune", TagIDs: []uint{77}})
	assert.ErrorIs(t, err, book.ErrTagNotFound)

	var count int64
	require.NoError(t, f.db.Model(&database.BookModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateBook_NonAuthorIsForbidden(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()
	id := f.publishBook(t, appbook.PublishBookRequest{Title: "Original", Description: "desc"})

	_, err := f.update.Load(ctx, id, f.visitor)
	assert.ErrorIs(t, err, book.ErrForbidden)

	err = f.update.Execute(ctx, appbook.UpdateBookRequest{
		BookID: id, UserID: f.visitor, Title: "Hijacked",
		Cover: &appbook.Cover{Filename: "x.png", Content: strings.NewReader("png")},
	})
	assert.ErrorIs(t, err, book.ErrForbidden)
	assert.Zero(t, f.covers.Len())

	b, err := f.books.GetBook(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Original", b.Title)
	assert.Equal(t, "desc", b.Description)
}

func TestUpdateBook_ReplacesCover(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()
	tag := testutil.CreateTag(t, f.db, "classic")
	id := f.publishBook(t, appbook.PublishBookRequest{
		Title: "Original",
		Cover: &appbook.Cover{Filename: "old.png", Content: strings.NewReader("old")},
	})
	before, err := f.books.GetBook(ctx, id)
	require.NoError(t, err)

	err = f.update.Execute(ctx, appbook.UpdateBookRequest{
		BookID: id, UserID: f.author, Title: "Renamed", TagIDs: []uint{tag.ID},
		Cover: &appbook.Cover{Filename: "new.png", Content: strings.NewReader("new")},
	})
	require.NoError(t, err)

	form, err := f.update.Load(ctx, id, f.author)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", form.Title)
	assert.Equal(t, []uint{tag.ID}, form.TagIDs)
	assert.NotEqual(t, f.covers.URL(before.CoverKey), form.CoverURL)

	assert.Equal(t, 1, f.covers.Len())
	assert.Contains(t, f.covers.Deleted, before.CoverKey)
	assert.Equal(t, []string{event.BookPublished, event.BookUpdated}, f.publisher.Names())
}

func TestUpdateBook_KeepsCoverWhenNoneUploaded(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()
	id := f.publishBook(t, appbook.PublishBookRequest{
		Title: "Original",
		Cover: &appbook.Cover{Filename: "old.png", Content: strings.NewReader("old")},
	})
	before, err := f.books.GetBook(ctx, id)
	require.NoError(t, err)

	require.NoError(t, f.update.Execute(ctx, appbook.UpdateBookRequest{BookID: id, UserID: f.author, Title: "Renamed"}))

	after, err := f.books.GetBook(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.CoverKey, after.CoverKey)
	assert.Empty(t, f.covers.Deleted)
}

func TestDeleteBook(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()
	id := f.publishBook(t, appbook.PublishBookRequest{
		Title: "Doomed",
		Cover: &appbook.Cover{Filename: "c.png", Content: strings.NewReader("c")},
	})

	err := f.remove.Execute(ctx, id, f.visitor)
	assert.ErrorIs(t, err, book.ErrForbidden)
	_, err = f.books.GetBook(ctx, id)
	require.NoError(t, err, "非作者删除后图书仍然存在")

	require.NoError(t, f.remove.Execute(ctx, id, f.author))
	_, err = f.books.GetBook(ctx, id)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.Zero(t, f.covers.Len())
	assert.Equal(t, []string{event.BookPublished, event.BookDeleted}, f.publisher.Names())
}

func TestAuthorBooks(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()
	f.publishBook(t, appbook.PublishBookRequest{Title: "Mine"})
	f.publishBook(t, appbook.PublishBookRequest{AuthorID: f.visitor, Title: "Theirs"})

	items, err := f.mine.Execute(ctx, f.author)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mine", items[0].Title)
	assert.Nil(t, items[0].AverageRating)
}

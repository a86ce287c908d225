package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/libros/internal/domain/book"
	"github.com/xiebiao/libros/internal/infrastructure/persistence/sqlite"
	"github.com/xiebiao/libros/internal/testutil"
	apperrors "github.com/xiebiao/libros/pkg/errors"
	"github.com/xiebiao/libros/pkg/logger"
)

func newRepo(t *testing.T) book.Repository {
	return sqlite.NewBookRepository(testutil.NewTestDB(t))
}

func orwell() *book.Book {
	return book.NewBook(book.Fields{
		Autor:     testutil.StrPtr("Orwell"),
		ISBN:      testutil.StrPtr("123"),
		Editorial: testutil.StrPtr("Secker"),
		Paginas:   testutil.StrPtr("328"),
	})
}

func TestNewDB(t *testing.T) {
	t.Run("建表并可重复同步", func(t *testing.T) {
		db := testutil.NewTestDB(t)

		assert.True(t, db.Migrator().HasTable("book"))
		for _, col := range []string{"id", "autor", "isbn", "editorial", "paginas", "created_at", "updated_at"} {
			assert.True(t, db.Migrator().HasColumn(&sqlite.BookModel{}, col), "缺少列: %s", col)
		}

		// 已存在的表不会被重建
		repo := sqlite.NewBookRepository(db)
		require.NoError(t, repo.Create(context.Background(), orwell()))
		require.NoError(t, sqlite.Synchronize(db))

		books, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, books, 1)
	})

	t.Run("目录不存在时失败", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)
		cfg.Database.Filename = filepath.Join(t.TempDir(), "missing", "libros.sqlite")

		_, _, err := sqlite.NewDB(cfg, logger.Discard())
		assert.Error(t, err)
	})

	t.Run("文件损坏时失败", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)
		require.NoError(t, os.WriteFile(cfg.Database.Filename, []byte("definitely not a sqlite database file, just text padding......"), 0o600))

		_, _, err := sqlite.NewDB(cfg, logger.Discard())
		assert.Error(t, err)
	})
}

func TestBookRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	b := orwell()
	require.NoError(t, repo.Create(ctx, b))
	assert.NotZero(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, found.ID)
	assert.Equal(t, "Orwell", *found.Autor)
	assert.Equal(t, "123", *found.ISBN)
	assert.Equal(t, "Secker", *found.Editorial)
	assert.Equal(t, "328", *found.Paginas)
}

func TestBookRepositoryNullableFields(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	b := book.NewBook(book.Fields{Paginas: testutil.StrPtr("0012")})
	require.NoError(t, repo.Create(ctx, b))

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Autor)
	assert.Nil(t, found.ISBN)
	assert.Nil(t, found.Editorial)
	assert.Equal(t, "0012", *found.Paginas, "页数按文本保存，不丢失前导0")
}

func TestBookRepositoryFindByIDNotFound(t *testing.T) {
	_, err := newRepo(t).FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepositoryUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("只更新出现的字段", func(t *testing.T) {
		repo := newRepo(t)
		b := orwell()
		require.NoError(t, repo.Create(ctx, b))

		updated, err := repo.Update(ctx, b.ID, book.Fields{Editorial: testutil.StrPtr("Penguin")})
		require.NoError(t, err)

		assert.Equal(t, b.ID, updated.ID)
		assert.Equal(t, "Penguin", *updated.Editorial)
		assert.Equal(t, "Orwell", *updated.Autor)
		assert.Equal(t, "328", *updated.Paginas)
		assert.False(t, updated.UpdatedAt.Before(b.UpdatedAt))

		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Penguin", *found.Editorial)
	})

	t.Run("空字段集合返回原记录", func(t *testing.T) {
		repo := newRepo(t)
		b := orwell()
		require.NoError(t, repo.Create(ctx, b))

		updated, err := repo.Update(ctx, b.ID, book.Fields{})
		require.NoError(t, err)
		assert.Equal(t, "Secker", *updated.Editorial)
	})

	t.Run("空字符串也会写入", func(t *testing.T) {
		repo := newRepo(t)
		b := orwell()
		require.NoError(t, repo.Create(ctx, b))

		updated, err := repo.Update(ctx, b.ID, book.Fields{Autor: testutil.StrPtr("")})
		require.NoError(t, err)
		require.NotNil(t, updated.Autor)
		assert.Equal(t, "", *updated.Autor)
	})

	t.Run("不存在时返回ErrBookNotFound且不写库", func(t *testing.T) {
		repo := newRepo(t)
		b := orwell()
		require.NoError(t, repo.Create(ctx, b))

		_, err := repo.Update(ctx, 999, book.Fields{Autor: testutil.StrPtr("Nadie")})
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		books, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Orwell", *books[0].Autor)
	})
}

func TestBookRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	b := orwell()
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.Delete(ctx, b.ID))
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), book.ErrBookNotFound)

	_, err := repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepositoryListOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, orwell()))
	}

	books, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	for i := 1; i < len(books); i++ {
		assert.Less(t, books[i-1].ID, books[i].ID)
	}
}

func TestBookRepositoryConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, orwell())
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, workers)
}

func TestBookRepositoryStorageError(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := sqlite.NewBookRepository(db)

	// 删表模拟存储层故障
	require.NoError(t, db.Migrator().DropTable(&sqlite.BookModel{}))

	_, err := repo.List(ctx)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, apperrors.GetAppError(err).Code)

	_, err = repo.FindByID(ctx, 1)
	assert.NotErrorIs(t, err, book.ErrBookNotFound)
	assert.Error(t, err)
}

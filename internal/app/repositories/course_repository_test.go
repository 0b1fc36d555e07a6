package repositories

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/curso/internal/app/migrations"
	"github.com/yigit/curso/internal/config"
	"github.com/yigit/curso/internal/db"
	"github.com/yigit/curso/internal/pkg/apperrors"
)

func newSQLiteRepository(t *testing.T) (*GormCourseRepository, *db.SQLiteDB) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "data.sqlite")
	cfg.Database.MaxOpenConns = 4
	cfg.Database.MaxIdleConns = 2
	cfg.Database.ConnMaxLifetime = "1h"

	store, err := db.NewSQLiteDB(cfg)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	require.NoError(t, migrations.AutoMigrate(store.DB))
	return NewGormCourseRepository(store.DB), store
}

func TestGormCourseRepository_ListAllEmpty(t *testing.T) {
	repo, _ := newSQLiteRepository(t)

	courses, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestGormCourseRepository_CreateThenList(t *testing.T) {
	repo, _ := newSQLiteRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, "Algorithms", "Intro to algorithms")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := repo.Create(ctx, "Databases", "Relational modelling")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	courses, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Algorithms", courses[0].Name)
	assert.Equal(t, "Intro to algorithms", courses[0].Description)
	assert.Equal(t, "Databases", courses[1].Name)
}

func TestGormCourseRepository_ListAllIdempotent(t *testing.T) {
	repo, _ := newSQLiteRepository(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, fmt.Sprintf("Course %d", i), "desc")
		require.NoError(t, err)
	}

	a, err := repo.ListAll(ctx)
	require.NoError(t, err)
	b, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGormCourseRepository_DuplicateName(t *testing.T) {
	repo, _ := newSQLiteRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Algorithms", "first")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "Algorithms", "second")
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)

	courses, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "first", courses[0].Description)
}

func TestGormCourseRepository_ConcurrentDuplicateOneWins(t *testing.T) {
	repo, _ := newSQLiteRepository(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, "Compilers", "race")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)
	}
	assert.Equal(t, 1, created)
}

func TestGormCourseRepository_StoreUnavailable(t *testing.T) {
	repo, store := newSQLiteRepository(t)
	store.Close()

	_, err := repo.ListAll(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrStoreUnavailable))

	_, err = repo.Create(context.Background(), "Algorithms", "desc")
	assert.True(t, errors.Is(err, apperrors.ErrStoreUnavailable))
	assert.False(t, errors.Is(err, apperrors.ErrCourseAlreadyExists))
}

func TestPostgresCourseQueries(t *testing.T) {
	sb := newStatementBuilder()

	sql, args, err := buildListCoursesQuery(sb)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, description, created_at FROM courses ORDER BY id ASC", sql)
	assert.Empty(t, args)

	sql, args, err = buildCreateCourseQuery(sb, "Algorithms", "Intro")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO courses (name,description) VALUES ($1,$2) RETURNING id, created_at", sql)
	assert.Equal(t, []interface{}{"Algorithms", "Intro"}, args)
}

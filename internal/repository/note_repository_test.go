package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/csdwebpro/notesphp/internal/model"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func noteColumns() []string {
	return []string{"id", "user_id", "title", "content", "category", "created_at", "updated_at", "deleted_at"}
}

func TestNoteRepository_Create_AssignsID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewNoteRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notes`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	note := &model.Note{UserID: 1, Title: "Groceries", Content: "milk, eggs", Category: "personal"}
	err := repo.Create(context.Background(), note)
	assert.NoError(t, err)
	assert.Equal(t, uint(5), note.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_ListByUser_FiltersDeletedAndOrders(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewNoteRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows(noteColumns()).
		AddRow(2, 1, "N2", "", "general", now, now, nil).
		AddRow(1, 1, "N1", "", "general", now, now, nil)

	mock.ExpectQuery("SELECT \\* FROM `notes` WHERE user_id = \\? AND `notes`\\.`deleted_at` IS NULL ORDER BY updated_at DESC, id DESC").
		WithArgs(1).
		WillReturnRows(rows)

	notes, err := repo.ListByUser(context.Background(), 1, "")
	assert.NoError(t, err)
	assert.Len(t, notes, 2)
	assert.Equal(t, uint(2), notes[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_ListByUser_CategoryFilter(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewNoteRepository(gormDB)

	mock.ExpectQuery("SELECT \\* FROM `notes` WHERE user_id = \\? AND category = \\? AND `notes`\\.`deleted_at` IS NULL ORDER BY updated_at DESC, id DESC").
		WithArgs(1, "work").
		WillReturnRows(sqlmock.NewRows(noteColumns()))

	notes, err := repo.ListByUser(context.Background(), 1, "work")
	assert.NoError(t, err)
	assert.Empty(t, notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_FindByID_ScopedByOwner(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewNoteRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `notes` WHERE .*id = \\? AND user_id = \\?.*`notes`\\.`deleted_at` IS NULL").
		WillReturnRows(sqlmock.NewRows(noteColumns()).
			AddRow(42, 1, "T", "C", "general", now, now, nil))

	note, err := repo.FindByID(context.Background(), 1, 42)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), note.ID)
	assert.Equal(t, uint(1), note.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_FindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewNoteRepository(gormDB)

	mock.ExpectQuery("SELECT \\* FROM `notes` WHERE .*id = \\? AND user_id = \\?").
		WillReturnRows(sqlmock.NewRows(noteColumns()))

	note, err := repo.FindByID(context.Background(), 1, 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, note)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_SoftDelete(t *testing.T) {
	t.Run("marks the row deleted", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewNoteRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `notes` SET `deleted_at`=\\? WHERE .*id = \\? AND user_id = \\?.*`notes`\\.`deleted_at` IS NULL").
			WithArgs(sqlmock.AnyArg(), 42, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.SoftDelete(context.Background(), 1, 42))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already deleted row matches nothing", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewNoteRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `notes` SET `deleted_at`=\\? WHERE .*id = \\? AND user_id = \\?.*`notes`\\.`deleted_at` IS NULL").
			WithArgs(sqlmock.AnyArg(), 42, 1).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.SoftDelete(context.Background(), 1, 42)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Search_SubstringBothFields(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewNoteRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `notes` WHERE .*user_id = \\? AND \\(title LIKE \\? OR content LIKE \\?\\).*`notes`\\.`deleted_at` IS NULL ORDER BY updated_at DESC, id DESC").
		WithArgs(1, "%foo%", "%foo%").
		WillReturnRows(sqlmock.NewRows(noteColumns()).
			AddRow(3, 1, "foo title", "", "general", now, now, nil))

	notes, err := repo.Search(context.Background(), 1, "foo")
	assert.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_CountByCategory(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewNoteRepository(gormDB)

	mock.ExpectQuery("SELECT category, COUNT\\(\\*\\) AS count FROM `notes` WHERE user_id = \\? AND `notes`\\.`deleted_at` IS NULL GROUP BY .category. ORDER BY category").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}).
			AddRow("general", 2).
			AddRow("work", 1))

	counts, err := repo.CountByCategory(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []model.CategoryCount{
		{Category: "general", Count: 2},
		{Category: "work", Count: 1},
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

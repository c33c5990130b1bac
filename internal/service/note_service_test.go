package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/csdwebpro/notesphp/internal/cache"
	apperrors "github.com/csdwebpro/notesphp/internal/errors"
	"github.com/csdwebpro/notesphp/internal/model"
)

// noCache is a nil cache client; its methods degrade to cache misses.
var noCache *cache.Client

// MockNoteRepository is a mock implementation of NoteRepository.
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) FindByID(ctx context.Context, userID, noteID uint) (*model.Note, error) {
	args := m.Called(ctx, userID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) ListByUser(ctx context.Context, userID uint, category string) ([]model.Note, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) SoftDelete(ctx context.Context, userID, noteID uint) error {
	args := m.Called(ctx, userID, noteID)
	return args.Error(0)
}

func (m *MockNoteRepository) Search(ctx context.Context, userID uint, query string) ([]model.Note, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteRepository) CountByCategory(ctx context.Context, userID uint) ([]model.CategoryCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryCount), args.Error(1)
}

func TestNoteService_CreateNote(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		content       string
		category      string
		wantCategory  string
		setupMock     func(*MockNoteRepository)
		expectedError error
	}{
		{
			name:         "defaults category",
			title:        "Groceries",
			content:      "milk, eggs",
			category:     "",
			wantCategory: "general",
			setupMock: func(m *MockNoteRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Note")).Return(nil)
			},
		},
		{
			name:         "keeps explicit category",
			title:        "Standup",
			content:      "",
			category:     "work",
			wantCategory: "work",
			setupMock: func(m *MockNoteRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Note")).Return(nil)
			},
		},
		{
			name:         "accepts category outside the UI label set",
			title:        "Old stuff",
			content:      "",
			category:     "archive",
			wantCategory: "archive",
			setupMock: func(m *MockNoteRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Note")).Return(nil)
			},
		},
		{
			name:          "rejects empty title",
			title:         "  ",
			content:       "body",
			category:      "work",
			setupMock:     func(m *MockNoteRepository) {},
			expectedError: apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockNoteRepository)
			tt.setupMock(mockRepo)

			svc := NewNoteService(mockRepo, noCache)
			note, err := svc.CreateNote(context.Background(), 1, tt.title, tt.content, tt.category)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, note)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(1), note.UserID)
				assert.Equal(t, tt.title, note.Title)
				assert.Equal(t, tt.content, note.Content)
				assert.Equal(t, tt.wantCategory, note.Category)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_GetNote(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1), uint(42)).
			Return(&model.Note{ID: 42, UserID: 1, Title: "T"}, nil)

		svc := NewNoteService(mockRepo, noCache)
		note, err := svc.GetNote(context.Background(), 1, 42)
		assert.NoError(t, err)
		assert.Equal(t, uint(42), note.ID)
	})

	t.Run("absent, deleted or foreign all read as not found", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2), uint(42)).
			Return(nil, gorm.ErrRecordNotFound)

		svc := NewNoteService(mockRepo, noCache)
		note, err := svc.GetNote(context.Background(), 2, 42)
		assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
		assert.Nil(t, note)
	})

	t.Run("storage failure surfaces as unavailable", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1), uint(42)).
			Return(nil, errors.New("dial tcp: connection refused"))

		svc := NewNoteService(mockRepo, noCache)
		_, err := svc.GetNote(context.Background(), 1, 42)
		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	})
}

func TestNoteService_UpdateNote(t *testing.T) {
	t.Run("overwrites fields and keeps created_at", func(t *testing.T) {
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		existing := &model.Note{
			ID: 42, UserID: 1,
			Title: "T1", Content: "C1", Category: "personal",
			CreatedAt: created,
		}
		mockRepo := new(MockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1), uint(42)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Note")).Return(nil)

		svc := NewNoteService(mockRepo, noCache)
		note, err := svc.UpdateNote(context.Background(), 1, 42, "T2", "C2", "work")
		assert.NoError(t, err)
		assert.Equal(t, "T2", note.Title)
		assert.Equal(t, "C2", note.Content)
		assert.Equal(t, "work", note.Category)
		assert.Equal(t, created, note.CreatedAt)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects empty title without touching storage", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		svc := NewNoteService(mockRepo, noCache)
		_, err := svc.UpdateNote(context.Background(), 1, 42, "", "C", "work")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "FindByID")
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, uint(9), uint(42)).
			Return(nil, gorm.ErrRecordNotFound)

		svc := NewNoteService(mockRepo, noCache)
		_, err := svc.UpdateNote(context.Background(), 9, 42, "T", "C", "work")
		assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
	})
}

func TestNoteService_DeleteNote(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("SoftDelete", mock.Anything, uint(1), uint(42)).Return(nil)

		svc := NewNoteService(mockRepo, noCache)
		assert.NoError(t, svc.DeleteNote(context.Background(), 1, 42))
	})

	t.Run("second delete is not idempotent", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("SoftDelete", mock.Anything, uint(1), uint(42)).Return(gorm.ErrRecordNotFound)

		svc := NewNoteService(mockRepo, noCache)
		err := svc.DeleteNote(context.Background(), 1, 42)
		assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
	})
}

func TestNoteService_SearchNotes(t *testing.T) {
	t.Run("delegates to search", func(t *testing.T) {
		want := []model.Note{{ID: 2, Title: "foo bar"}, {ID: 1, Content: "has foo inside"}}
		mockRepo := new(MockNoteRepository)
		mockRepo.On("Search", mock.Anything, uint(1), "foo").Return(want, nil)

		svc := NewNoteService(mockRepo, noCache)
		notes, err := svc.SearchNotes(context.Background(), 1, "foo")
		assert.NoError(t, err)
		assert.Equal(t, want, notes)
	})

	t.Run("empty query returns the full list", func(t *testing.T) {
		want := []model.Note{{ID: 3}, {ID: 2}, {ID: 1}}
		mockRepo := new(MockNoteRepository)
		mockRepo.On("ListByUser", mock.Anything, uint(1), "").Return(want, nil)

		svc := NewNoteService(mockRepo, noCache)
		notes, err := svc.SearchNotes(context.Background(), 1, "")
		assert.NoError(t, err)
		assert.Equal(t, want, notes)
		mockRepo.AssertNotCalled(t, "Search")
	})
}

func TestNoteService_ListNotes(t *testing.T) {
	t.Run("passes category filter through", func(t *testing.T) {
		want := []model.Note{{ID: 5, Category: "work"}}
		mockRepo := new(MockNoteRepository)
		mockRepo.On("ListByUser", mock.Anything, uint(1), "work").Return(want, nil)

		svc := NewNoteService(mockRepo, noCache)
		notes, err := svc.ListNotes(context.Background(), 1, "work")
		assert.NoError(t, err)
		assert.Equal(t, want, notes)
	})

	t.Run("storage failure", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("ListByUser", mock.Anything, uint(1), "").Return(nil, errors.New("bad conn"))

		svc := NewNoteService(mockRepo, noCache)
		_, err := svc.ListNotes(context.Background(), 1, "")
		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	})
}

func TestNoteService_ListCategories(t *testing.T) {
	want := []model.CategoryCount{{Category: "general", Count: 2}, {Category: "work", Count: 1}}
	mockRepo := new(MockNoteRepository)
	mockRepo.On("CountByCategory", mock.Anything, uint(1)).Return(want, nil)

	svc := NewNoteService(mockRepo, noCache)
	counts, err := svc.ListCategories(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, want, counts)
}

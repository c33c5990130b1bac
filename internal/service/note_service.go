package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/csdwebpro/notesphp/internal/cache"
	apperrors "github.com/csdwebpro/notesphp/internal/errors"
	"github.com/csdwebpro/notesphp/internal/model"
	"github.com/csdwebpro/notesphp/internal/repository"
)

const noteCacheTTL = 5 * time.Minute

// NoteService exposes the note lifecycle, always scoped by the authenticated
// user id. A note that is absent, soft-deleted, or owned by someone else fails
// with ErrNoteNotFound on every path.
type NoteService interface {
	CreateNote(ctx context.Context, userID uint, title, content, category string) (*model.Note, error)
	GetNote(ctx context.Context, userID, noteID uint) (*model.Note, error)
	ListNotes(ctx context.Context, userID uint, category string) ([]model.Note, error)
	UpdateNote(ctx context.Context, userID, noteID uint, title, content, category string) (*model.Note, error)
	DeleteNote(ctx context.Context, userID, noteID uint) error
	SearchNotes(ctx context.Context, userID uint, query string) ([]model.Note, error)
	ListCategories(ctx context.Context, userID uint) ([]model.CategoryCount, error)
}

type noteService struct {
	repo  repository.NoteRepository
	cache *cache.Client
}

// NewNoteService builds a NoteService with repository and cache.
func NewNoteService(repo repository.NoteRepository, cache *cache.Client) NoteService {
	return &noteService{repo: repo, cache: cache}
}

func (s *noteService) cacheKey(userID, noteID uint) string {
	return fmt.Sprintf("note:%d:%d", userID, noteID)
}

// storageFailure tags an infrastructure-level error so callers can match it
// as ErrStorageUnavailable while keeping the underlying cause in the message.
func storageFailure(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, apperrors.ErrStorageUnavailable)
}

// CreateNote stores a new note. Title must be non-empty; an empty category
// falls back to the default. Any other category value is stored as-is.
func (s *noteService) CreateNote(ctx context.Context, userID uint, title, content, category string) (*model.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("create note: %w", apperrors.ErrInvalidInput)
	}
	if category == "" {
		category = model.DefaultCategory
	}

	note := &model.Note{
		UserID:   userID,
		Title:    title,
		Content:  content,
		Category: category,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, storageFailure("create note", err)
	}
	return note, nil
}

func (s *noteService) GetNote(ctx context.Context, userID, noteID uint) (*model.Note, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID, noteID)); data != nil {
		var cached model.Note
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	note, err := s.repo.FindByID(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, storageFailure("get note", err)
	}

	if payload, err := json.Marshal(note); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID, noteID), payload, noteCacheTTL)
	}
	return note, nil
}

func (s *noteService) ListNotes(ctx context.Context, userID uint, category string) ([]model.Note, error) {
	notes, err := s.repo.ListByUser(ctx, userID, category)
	if err != nil {
		return nil, storageFailure("list notes", err)
	}
	return notes, nil
}

// UpdateNote overwrites title, content and category and bumps updated_at.
// created_at and deleted_at are untouched.
func (s *noteService) UpdateNote(ctx context.Context, userID, noteID uint, title, content, category string) (*model.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("update note: %w", apperrors.ErrInvalidInput)
	}

	note, err := s.repo.FindByID(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, storageFailure("find note", err)
	}

	note.Title = title
	note.Content = content
	note.Category = category
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, storageFailure("update note", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID, noteID))
	return note, nil
}

// DeleteNote soft-deletes a note. Deleting an already-deleted note fails with
// ErrNoteNotFound, matching every other read of a deleted row.
func (s *noteService) DeleteNote(ctx context.Context, userID, noteID uint) error {
	if err := s.repo.SoftDelete(ctx, userID, noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNoteNotFound
		}
		return storageFailure("delete note", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, noteID))
	return nil
}

// SearchNotes runs a case-insensitive substring match over title and content.
// An empty query degenerates to the full list rather than a LIKE '%%' quirk.
func (s *noteService) SearchNotes(ctx context.Context, userID uint, query string) ([]model.Note, error) {
	if query == "" {
		return s.ListNotes(ctx, userID, "")
	}
	notes, err := s.repo.Search(ctx, userID, query)
	if err != nil {
		return nil, storageFailure("search notes", err)
	}
	return notes, nil
}

func (s *noteService) ListCategories(ctx context.Context, userID uint) ([]model.CategoryCount, error) {
	counts, err := s.repo.CountByCategory(ctx, userID)
	if err != nil {
		return nil, storageFailure("count categories", err)
	}
	return counts, nil
}

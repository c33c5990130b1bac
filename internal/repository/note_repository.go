package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/csdwebpro/notesphp/internal/model"
)

// noteOrder is the canonical listing order: most recently touched first,
// ties broken by id for determinism.
const noteOrder = "updated_at DESC, id DESC"

// NoteRepository defines note persistence operations. Every query is scoped
// by the owning user id; soft-deleted rows are excluded from all of them, so
// an absent, deleted, or foreign note uniformly reads as gorm.ErrRecordNotFound.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, userID, noteID uint) (*model.Note, error)
	ListByUser(ctx context.Context, userID uint, category string) ([]model.Note, error)
	Update(ctx context.Context, note *model.Note) error
	SoftDelete(ctx context.Context, userID, noteID uint) error
	Search(ctx context.Context, userID uint, query string) ([]model.Note, error)
	CountByCategory(ctx context.Context, userID uint) ([]model.CategoryCount, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository builds a GORM-backed note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) FindByID(ctx context.Context, userID, noteID uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) ListByUser(ctx context.Context, userID uint, category string) ([]model.Note, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var notes []model.Note
	if err := q.Order(noteOrder).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Update overwrites all fields of an already-loaded note. Callers must have
// fetched the note through FindByID so ownership is established.
func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

// SoftDelete marks the note deleted. A note that is already deleted (or absent,
// or foreign) matches zero rows and reports gorm.ErrRecordNotFound: a second
// delete of the same note is an error, not a no-op.
func (r *noteRepository) SoftDelete(ctx context.Context, userID, noteID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", noteID, userID).Delete(&model.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Search matches notes whose title or content contains query as a substring.
// Matching is case-insensitive under the default utf8mb4 collation, the same
// way a plain LIKE behaves.
func (r *noteRepository) Search(ctx context.Context, userID uint, query string) ([]model.Note, error) {
	pattern := "%" + query + "%"
	var notes []model.Note
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND (title LIKE ? OR content LIKE ?)", userID, pattern, pattern).
		Order(noteOrder).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) CountByCategory(ctx context.Context, userID uint) ([]model.CategoryCount, error) {
	var counts []model.CategoryCount
	err := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Select("category, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category").
		Order("category").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/notemind/notemind/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GormNoteRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewGormNoteRepository(db *gorm.DB, logger *zap.Logger) *GormNoteRepository {
	return &GormNoteRepository{db: db, logger: logger}
}

func (r *GormNoteRepository) GetByID(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&note)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.logger.Error("Failed to get note by ID",
				zap.Uint("note_id", id),
				zap.Error(result.Error),
			)
		}
		return nil, result.Error
	}

	return &note, nil
}

func (r *GormNoteRepository) ListByUser(ctx context.Context, userID uint, search, tag, sort string) ([]model.Note, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	if tag != "" {
		// tags is a JSONB array of {id,name,color} refs; containment on the
		// name selects notes carrying the tag.
		probe, err := json.Marshal([]map[string]string{{"name": tag}})
		if err != nil {
			return nil, err
		}
		query = query.Where("tags @> ?", string(probe))
	}

	switch sort {
	case "title":
		query = query.Order("title ASC")
	case "updated":
		query = query.Order("last_edited DESC")
	case "oldest":
		query = query.Order("created_at ASC")
	default: // newest first
		query = query.Order("created_at DESC")
	}

	start := time.Now()
	var notes []model.Note
	if err := query.Find(&notes).Error; err != nil {
		r.logger.Error("Failed to list notes",
			zap.Uint("user_id", userID),
			zap.String("search", search),
			zap.String("tag", tag),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	return notes, nil
}

func (r *GormNoteRepository) Create(ctx context.Context, note *model.Note) error {
	result := r.db.WithContext(ctx).Create(note)
	if result.Error != nil {
		r.logger.Error("Failed to create note",
			zap.Uint("user_id", note.UserID),
			zap.Error(result.Error),
		)
		return result.Error
	}

	r.logger.Info("Note created",
		zap.Uint("note_id", note.ID),
		zap.Uint("user_id", note.UserID),
	)

	return nil
}

func (r *GormNoteRepository) Update(ctx context.Context, note *model.Note) error {
	result := r.db.WithContext(ctx).Save(note)
	if result.Error != nil {
		r.logger.Error("Failed to update note",
			zap.Uint("note_id", note.ID),
			zap.Error(result.Error),
		)
		return result.Error
	}

	return nil
}

func (r *GormNoteRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Note{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete note",
			zap.Uint("note_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.logger.Info("Note deleted", zap.Uint("note_id", id))

	return nil
}

func (r *GormNoteRepository) UpdateSummary(ctx context.Context, id uint, summary string) error {
	result := r.db.WithContext(ctx).Model(&model.Note{}).Where("id = ?", id).Updates(map[string]any{
		"summary":     summary,
		"last_edited": time.Now(),
	})

	if result.Error != nil {
		r.logger.Error("Failed to update note summary",
			zap.Uint("note_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

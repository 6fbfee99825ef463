package service

import (
	"context"
	"time"

	"github.com/notemind/notemind/internal/dto"
	apperrors "github.com/notemind/notemind/internal/errors"
	"github.com/notemind/notemind/internal/model"
	"github.com/notemind/notemind/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NoteService implements note CRUD with per-user ownership. An unknown note
// is NotFound; a note owned by someone else is Forbidden.
type NoteService struct {
	notes  repository.NoteRepository
	logger *zap.Logger
}

func NewNoteService(notes repository.NoteRepository, logger *zap.Logger) *NoteService {
	return &NoteService{notes: notes, logger: logger}
}

// getOwned loads a note and enforces ownership.
func (s *NoteService) getOwned(ctx context.Context, userID, noteID uint) (*model.Note, error) {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if note.UserID != userID {
		s.logger.Warn("Note access denied",
			zap.Uint("note_id", noteID),
			zap.Uint("owner_id", note.UserID),
			zap.Uint("user_id", userID),
		)
		return nil, apperrors.ErrForbidden
	}
	return note, nil
}

func (s *NoteService) Create(ctx context.Context, userID uint, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	color := req.Color
	if color == "" {
		color = model.DefaultNoteColor
	}

	note := &model.Note{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       datatypes.NewJSONSlice(normalizeTagRefs(req.Tags)),
		Color:      color,
		LastEdited: time.Now(),
		UserID:     userID,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		s.logger.Error("Failed to create note", zap.Uint("user_id", userID), zap.Error(err))
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.logger.Info("Note created",
		zap.Uint("note_id", note.ID),
		zap.Uint("user_id", userID),
	)

	response := toNoteResponse(note)
	return &response, nil
}

func (s *NoteService) Get(ctx context.Context, userID, noteID uint) (*dto.NoteResponse, error) {
	note, err := s.getOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	response := toNoteResponse(note)
	return &response, nil
}

func (s *NoteService) List(ctx context.Context, userID uint, filter *dto.NoteFilter) ([]dto.NoteResponse, error) {
	notes, err := s.notes.ListByUser(ctx, userID, filter.Search, filter.Tag, filter.Sort)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, toNoteResponse(&notes[i]))
	}
	return responses, nil
}

// Update applies a partial update. Content and IsPinned are pointers so an
// explicit empty string or false is distinguishable from "not sent". Any
// change refreshes LastEdited.
func (s *NoteService) Update(ctx context.Context, userID, noteID uint, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	note, err := s.getOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	contentChanged := false

	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Content != nil && *req.Content != note.Content {
		note.Content = *req.Content
		contentChanged = true
	}
	if req.Tags != nil {
		note.Tags = datatypes.NewJSONSlice(normalizeTagRefs(req.Tags))
	}
	if req.Color != "" {
		note.Color = req.Color
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}

	// A stale summary is worse than none.
	if contentChanged {
		note.Summary = ""
	}
	note.LastEdited = time.Now()

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.logger.Info("Note updated",
		zap.Uint("note_id", note.ID),
		zap.Uint("user_id", userID),
	)

	response := toNoteResponse(note)
	return &response, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID uint) error {
	note, err := s.getOwned(ctx, userID, noteID)
	if err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, note.ID); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.logger.Info("Note deleted",
		zap.Uint("note_id", note.ID),
		zap.Uint("user_id", userID),
	)
	return nil
}

func normalizeTagRefs(tags []model.NoteTagRef) []model.NoteTagRef {
	if tags == nil {
		return []model.NoteTagRef{}
	}
	for i := range tags {
		if tags[i].Color == "" {
			tags[i].Color = model.DefaultTagColor
		}
	}
	return tags
}

func toNoteResponse(note *model.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		Summary:    note.Summary,
		Tags:       note.Tags,
		Color:      note.Color,
		IsPinned:   note.IsPinned,
		LastEdited: note.LastEdited,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

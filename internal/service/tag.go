package service

import (
	"context"
	"strings"

	"github.com/notemind/notemind/internal/dto"
	apperrors "github.com/notemind/notemind/internal/errors"
	"github.com/notemind/notemind/internal/model"
	"github.com/notemind/notemind/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TagService implements tag CRUD. Tag names are unique per user,
// case-insensitively.
type TagService struct {
	tags   repository.TagRepository
	logger *zap.Logger
}

func NewTagService(tags repository.TagRepository, logger *zap.Logger) *TagService {
	return &TagService{tags: tags, logger: logger}
}

func (s *TagService) getOwned(ctx context.Context, userID, tagID uint) (*model.Tag, error) {
	tag, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if tag.UserID != userID {
		s.logger.Warn("Tag access denied",
			zap.Uint("tag_id", tagID),
			zap.Uint("owner_id", tag.UserID),
			zap.Uint("user_id", userID),
		)
		return nil, apperrors.ErrForbidden
	}
	return tag, nil
}

// nameTaken reports whether another tag of the same user already holds the
// name, ignoring case.
func (s *TagService) nameTaken(ctx context.Context, userID uint, name string, excludeID uint) (bool, error) {
	existing, err := s.tags.GetByName(ctx, userID, name)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return existing.ID != excludeID, nil
}

func (s *TagService) Create(ctx context.Context, userID uint, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	name := strings.TrimSpace(req.Name)

	taken, err := s.nameTaken(ctx, userID, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateTag
	}

	color := req.Color
	if color == "" {
		color = model.DefaultTagColor
	}

	tag := &model.Tag{
		Name:   name,
		Color:  color,
		UserID: userID,
	}

	if err := s.tags.Create(ctx, tag); err != nil {
		s.logger.Error("Failed to create tag", zap.Uint("user_id", userID), zap.Error(err))
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.logger.Info("Tag created",
		zap.Uint("tag_id", tag.ID),
		zap.Uint("user_id", userID),
		zap.String("name", name),
	)

	response := toTagResponse(tag)
	return &response, nil
}

func (s *TagService) Get(ctx context.Context, userID, tagID uint) (*dto.TagResponse, error) {
	tag, err := s.getOwned(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}
	response := toTagResponse(tag)
	return &response, nil
}

func (s *TagService) List(ctx context.Context, userID uint, filter *dto.TagFilter) ([]dto.TagResponse, error) {
	tags, err := s.tags.ListByUser(ctx, userID, filter.Search)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	responses := make([]dto.TagResponse, 0, len(tags))
	for i := range tags {
		responses = append(responses, toTagResponse(&tags[i]))
	}
	return responses, nil
}

func (s *TagService) Update(ctx context.Context, userID, tagID uint, req *dto.UpdateTagRequest) (*dto.TagResponse, error) {
	tag, err := s.getOwned(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		taken, err := s.nameTaken(ctx, userID, name, tag.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrDuplicateTag
		}
		tag.Name = name
	}
	if req.Color != "" {
		tag.Color = req.Color
	}

	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.logger.Info("Tag updated",
		zap.Uint("tag_id", tag.ID),
		zap.Uint("user_id", userID),
	)

	response := toTagResponse(tag)
	return &response, nil
}

func (s *TagService) Delete(ctx context.Context, userID, tagID uint) error {
	tag, err := s.getOwned(ctx, userID, tagID)
	if err != nil {
		return err
	}

	if err := s.tags.Delete(ctx, tag.ID); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.logger.Info("Tag deleted",
		zap.Uint("tag_id", tag.ID),
		zap.Uint("user_id", userID),
	)
	return nil
}

func toTagResponse(tag *model.Tag) dto.TagResponse {
	return dto.TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		Color:     tag.Color,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}

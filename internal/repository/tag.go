package repository

import (
	"context"

	"github.com/notemind/notemind/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GormTagRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewGormTagRepository(db *gorm.DB, logger *zap.Logger) *GormTagRepository {
	return &GormTagRepository{db: db, logger: logger}
}

func (r *GormTagRepository) GetByID(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&tag)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.logger.Error("Failed to get tag by ID",
				zap.Uint("tag_id", id),
				zap.Error(result.Error),
			)
		}
		return nil, result.Error
	}

	return &tag, nil
}

// GetByName matches the tag name case-insensitively within one user's tags.
func (r *GormTagRepository) GetByName(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	var tag model.Tag

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		First(&tag)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.logger.Error("Failed to get tag by name",
				zap.Uint("user_id", userID),
				zap.String("name", name),
				zap.Error(result.Error),
			)
		}
		return nil, result.Error
	}

	return &tag, nil
}

func (r *GormTagRepository) ListByUser(ctx context.Context, userID uint, search string) ([]model.Tag, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var tags []model.Tag
	if err := query.Order("name ASC").Find(&tags).Error; err != nil {
		r.logger.Error("Failed to list tags",
			zap.Uint("user_id", userID),
			zap.String("search", search),
			zap.Error(err),
		)
		return nil, err
	}

	return tags, nil
}

func (r *GormTagRepository) Create(ctx context.Context, tag *model.Tag) error {
	result := r.db.WithContext(ctx).Create(tag)
	if result.Error != nil {
		r.logger.Error("Failed to create tag",
			zap.Uint("user_id", tag.UserID),
			zap.String("name", tag.Name),
			zap.Error(result.Error),
		)
		return result.Error
	}

	r.logger.Info("Tag created",
		zap.Uint("tag_id", tag.ID),
		zap.Uint("user_id", tag.UserID),
		zap.String("name", tag.Name),
	)

	return nil
}

func (r *GormTagRepository) Update(ctx context.Context, tag *model.Tag) error {
	result := r.db.WithContext(ctx).Save(tag)
	if result.Error != nil {
		r.logger.Error("Failed to update tag",
			zap.Uint("tag_id", tag.ID),
			zap.Error(result.Error),
		)
		return result.Error
	}

	return nil
}

func (r *GormTagRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Tag{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete tag",
			zap.Uint("tag_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

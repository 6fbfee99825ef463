package repository

import (
	"context"
	"time"

	"github.com/notemind/notemind/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormUserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewGormUserRepository(db *gorm.DB, logger *zap.Logger) *GormUserRepository {
	return &GormUserRepository{db: db, logger: logger}
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User

	start := time.Now()
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)

	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.logger.Error("Failed to get user by ID",
				zap.Uint("user_id", id),
				zap.Duration("duration", time.Since(start)),
				zap.Error(result.Error),
			)
		}
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.logger.Error("Failed to get user by email",
				zap.String("email", email),
				zap.Error(result.Error),
			)
		}
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)

	if result.Error != nil {
		r.logger.Error("Failed to create user",
			zap.String("email", user.Email),
			zap.Duration("duration", time.Since(start)),
			zap.Error(result.Error),
		)
		return result.Error
	}

	r.logger.Info("User created",
		zap.String("email", user.Email),
		zap.Uint("user_id", user.ID),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}

func (r *GormUserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)

	if result.Error != nil {
		r.logger.Error("Failed to update user",
			zap.Uint("user_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *GormUserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hashedPassword)

	if result.Error != nil {
		r.logger.Error("Failed to update user password",
			zap.Uint("user_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.logger.Info("User password updated", zap.Uint("user_id", id))

	return nil
}

func (r *GormUserRepository) UpdateLastActive(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("last_active", time.Now())

	if result.Error != nil {
		r.logger.Error("Failed to update last active",
			zap.Uint("user_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}

	return nil
}

func (r *GormUserRepository) SetResetToken(ctx context.Context, id uint, tokenHash string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(map[string]any{
		"reset_token_hash":       tokenHash,
		"reset_token_expires_at": expiresAt,
	})

	if result.Error != nil {
		r.logger.Error("Failed to set reset token",
			zap.Uint("user_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ConsumeResetToken claims the matching user with a single conditional UPDATE.
// The WHERE clause is the serialization point: two concurrent consumers race on
// the same row and Postgres lets exactly one of them match.
func (r *GormUserRepository) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (*model.User, error) {
	var users []model.User

	result := r.db.WithContext(ctx).
		Model(&users).
		Clauses(clause.Returning{}).
		Where("reset_token_hash = ? AND reset_token_expires_at > ?", tokenHash, now).
		Updates(map[string]any{
			"password":               newPasswordHash,
			"reset_token_hash":       nil,
			"reset_token_expires_at": nil,
		})

	if result.Error != nil {
		r.logger.Error("Failed to consume reset token", zap.Error(result.Error))
		return nil, result.Error
	}

	if result.RowsAffected == 0 || len(users) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	r.logger.Info("Reset token consumed", zap.Uint("user_id", users[0].ID))

	return &users[0], nil
}

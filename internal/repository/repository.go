// Package repository defines the persistence contracts and their two
// implementations: a Postgres-backed store for production and an in-memory
// store for tests. Which one a service talks to is decided by injection.
package repository

import (
	"context"
	"time"

	"github.com/notemind/notemind/internal/model"
)

// UserRepository is the credential store. Implementations return
// gorm.ErrRecordNotFound for missing rows regardless of backend.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	UpdateLastActive(ctx context.Context, id uint) error

	// SetResetToken stores the reset-token digest and its expiry on the user.
	SetResetToken(ctx context.Context, id uint, tokenHash string, expiresAt time.Time) error

	// ConsumeResetToken atomically claims the user whose stored digest matches
	// tokenHash and whose expiry is after now, replacing their password and
	// clearing both reset fields in the same statement. At most one concurrent
	// caller wins; all others get gorm.ErrRecordNotFound.
	ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (*model.User, error)
}

type NoteRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Note, error)
	ListByUser(ctx context.Context, userID uint, search, tag, sort string) ([]model.Note, error)
	Create(ctx context.Context, note *model.Note) error
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id uint) error
	UpdateSummary(ctx context.Context, id uint, summary string) error
}

type TagRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Tag, error)
	GetByName(ctx context.Context, userID uint, name string) (*model.Tag, error)
	ListByUser(ctx context.Context, userID uint, search string) ([]model.Tag, error)
	Create(ctx context.Context, tag *model.Tag) error
	Update(ctx context.Context, tag *model.Tag) error
	Delete(ctx context.Context, id uint) error
}

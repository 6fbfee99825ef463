package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/notemind/notemind/internal/model"
	"gorm.io/gorm"
)

// MemoryUserRepository is the in-memory credential store used by tests and
// DB-less development. All methods are safe for concurrent use; the mutex is
// what makes ConsumeResetToken atomic here.
type MemoryUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		nextID: 1,
		users:  make(map[uint]*model.User),
	}
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	clone := *user
	return &clone, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *MemoryUserRepository) UpdateFields(_ context.Context, id uint, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	for column, value := range fields {
		switch column {
		case "name":
			user.Name = value.(string)
		case "email":
			user.Email = value.(string)
		case "avatar":
			user.Avatar = value.(string)
		}
	}
	user.UpdatedAt = time.Now()

	return nil
}

func (r *MemoryUserRepository) UpdatePassword(_ context.Context, id uint, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	user.Password = hashedPassword
	user.UpdatedAt = time.Now()

	return nil
}

func (r *MemoryUserRepository) UpdateLastActive(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	user.LastActive = time.Now()

	return nil
}

func (r *MemoryUserRepository) SetResetToken(_ context.Context, id uint, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	user.ResetTokenHash = tokenHash
	expiry := expiresAt
	user.ResetTokenExpires = &expiry

	return nil
}

func (r *MemoryUserRepository) ConsumeResetToken(_ context.Context, tokenHash, newPasswordHash string, now time.Time) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ResetTokenHash != tokenHash {
			continue
		}
		if user.ResetTokenExpires == nil || !user.ResetTokenExpires.After(now) {
			continue
		}

		user.Password = newPasswordHash
		user.ResetTokenHash = ""
		user.ResetTokenExpires = nil
		user.UpdatedAt = time.Now()

		clone := *user
		return &clone, nil
	}

	return nil, gorm.ErrRecordNotFound
}

// MemoryNoteRepository mirrors the Postgres note store for tests.
type MemoryNoteRepository struct {
	mu     sync.Mutex
	nextID uint
	notes  map[uint]*model.Note
}

func NewMemoryNoteRepository() *MemoryNoteRepository {
	return &MemoryNoteRepository{
		nextID: 1,
		notes:  make(map[uint]*model.Note),
	}
}

func (r *MemoryNoteRepository) GetByID(_ context.Context, id uint) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	clone := *note
	return &clone, nil
}

func (r *MemoryNoteRepository) ListByUser(_ context.Context, userID uint, search, tag, sortKey string) ([]model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var notes []model.Note
	for _, note := range r.notes {
		if note.UserID != userID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(note.Title), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(note.Content), strings.ToLower(search)) {
			continue
		}
		if tag != "" && !hasTag(note, tag) {
			continue
		}
		notes = append(notes, *note)
	}

	switch sortKey {
	case "title":
		sort.Slice(notes, func(a, b int) bool { return notes[a].Title < notes[b].Title })
	case "updated":
		sort.Slice(notes, func(a, b int) bool { return notes[a].LastEdited.After(notes[b].LastEdited) })
	case "oldest":
		sort.Slice(notes, func(a, b int) bool { return notes[a].CreatedAt.Before(notes[b].CreatedAt) })
	default:
		sort.Slice(notes, func(a, b int) bool { return notes[a].CreatedAt.After(notes[b].CreatedAt) })
	}

	return notes, nil
}

func hasTag(note *model.Note, tag string) bool {
	for _, ref := range note.Tags {
		if ref.Name == tag {
			return true
		}
	}
	return false
}

func (r *MemoryNoteRepository) Create(_ context.Context, note *model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note.ID = r.nextID
	r.nextID++
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	clone := *note
	r.notes[note.ID] = &clone

	return nil
}

func (r *MemoryNoteRepository) Update(_ context.Context, note *model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[note.ID]; !ok {
		return gorm.ErrRecordNotFound
	}

	note.UpdatedAt = time.Now()
	clone := *note
	r.notes[note.ID] = &clone

	return nil
}

func (r *MemoryNoteRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return gorm.ErrRecordNotFound
	}

	delete(r.notes, id)

	return nil
}

func (r *MemoryNoteRepository) UpdateSummary(_ context.Context, id uint, summary string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	note.Summary = summary
	note.LastEdited = time.Now()

	return nil
}

// MemoryTagRepository mirrors the Postgres tag store for tests.
type MemoryTagRepository struct {
	mu     sync.Mutex
	nextID uint
	tags   map[uint]*model.Tag
}

func NewMemoryTagRepository() *MemoryTagRepository {
	return &MemoryTagRepository{
		nextID: 1,
		tags:   make(map[uint]*model.Tag),
	}
}

func (r *MemoryTagRepository) GetByID(_ context.Context, id uint) (*model.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tag, ok := r.tags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	clone := *tag
	return &clone, nil
}

func (r *MemoryTagRepository) GetByName(_ context.Context, userID uint, name string) (*model.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tag := range r.tags {
		if tag.UserID == userID && strings.EqualFold(tag.Name, name) {
			clone := *tag
			return &clone, nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryTagRepository) ListByUser(_ context.Context, userID uint, search string) ([]model.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tags []model.Tag
	for _, tag := range r.tags {
		if tag.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(tag.Name), strings.ToLower(search)) {
			continue
		}
		tags = append(tags, *tag)
	}

	sort.Slice(tags, func(a, b int) bool { return tags[a].Name < tags[b].Name })

	return tags, nil
}

func (r *MemoryTagRepository) Create(_ context.Context, tag *model.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tag.ID = r.nextID
	r.nextID++
	tag.CreatedAt = time.Now()
	tag.UpdatedAt = tag.CreatedAt

	clone := *tag
	r.tags[tag.ID] = &clone

	return nil
}

func (r *MemoryTagRepository) Update(_ context.Context, tag *model.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tags[tag.ID]; !ok {
		return gorm.ErrRecordNotFound
	}

	tag.UpdatedAt = time.Now()
	clone := *tag
	r.tags[tag.ID] = &clone

	return nil
}

func (r *MemoryTagRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tags[id]; !ok {
		return gorm.ErrRecordNotFound
	}

	delete(r.tags, id)

	return nil
}

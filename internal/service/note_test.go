package service

import (
	"context"
	"errors"
	"testing"

	"github.com/notemind/notemind/internal/dto"
	apperrors "github.com/notemind/notemind/internal/errors"
	"github.com/notemind/notemind/internal/model"
	"github.com/notemind/notemind/internal/repository"
	"go.uber.org/zap"
)

func newTestNoteService() *NoteService {
	return NewNoteService(repository.NewMemoryNoteRepository(), zap.NewNop())
}

func TestNoteServiceCreateDefaults(t *testing.T) {
	t.Parallel()

	svc := newTestNoteService()
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, &dto.CreateNoteRequest{
		Title:   "Groceries",
		Content: "Milk, eggs, coffee.",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if note.Color != model.DefaultNoteColor {
		t.Errorf("Create() color = %q, want default %q", note.Color, model.DefaultNoteColor)
	}
	if note.Tags == nil {
		t.Error("Create() tags = nil, want empty slice")
	}
	if note.LastEdited.IsZero() {
		t.Error("Create() lastEdited is zero")
	}
}

func TestNoteServiceCreateWithTags(t *testing.T) {
	t.Parallel()

	svc := newTestNoteService()

	note, err := svc.Create(context.Background(), 1, &dto.CreateNoteRequest{
		Title:   "Reading list",
		Content: "Finish the compilers book.",
		Tags: []model.NoteTagRef{
			{ID: 3, Name: "books", Color: "#112233"},
			{ID: 4, Name: "study"},
		},
		Color: "#fef3c7",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(note.Tags) != 2 {
		t.Fatalf("Create() tags = %d, want 2", len(note.Tags))
	}
	if note.Tags[1].Color != model.DefaultTagColor {
		t.Errorf("tag without color = %q, want default %q", note.Tags[1].Color, model.DefaultTagColor)
	}
	if note.Color != "#fef3c7" {
		t.Errorf("Create() color = %q, want %q", note.Color, "#fef3c7")
	}
}

func TestNoteServiceOwnership(t *testing.T) {
	t.Parallel()

	svc := newTestNoteService()
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, &dto.CreateNoteRequest{Title: "Mine", Content: "Private."})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Get(ctx, 2, note.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("Get() as other user error = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(ctx, 1, 9999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(ctx, 2, note.ID, &dto.UpdateNoteRequest{Title: "Hijack"}); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("Update() as other user error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, 2, note.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("Delete() as other user error = %v, want ErrForbidden", err)
	}

	// Owner still has the note untouched.
	got, err := svc.Get(ctx, 1, note.ID)
	if err != nil {
		t.Fatalf("Get() as owner error = %v", err)
	}
	if got.Title != "Mine" {
		t.Errorf("note title = %q, want %q", got.Title, "Mine")
	}
}

func TestNoteServiceUpdatePartial(t *testing.T) {
	t.Parallel()

	svc := newTestNoteService()
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, &dto.CreateNoteRequest{Title: "Draft", Content: "Version one."})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	pinned := true
	updated, err := svc.Update(ctx, 1, note.ID, &dto.UpdateNoteRequest{IsPinned: &pinned})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !updated.IsPinned {
		t.Error("Update() isPinned = false, want true")
	}
	if updated.Title != "Draft" || updated.Content != "Version one." {
		t.Errorf("Update() clobbered untouched fields: title %q content %q", updated.Title, updated.Content)
	}
	if !updated.LastEdited.After(note.LastEdited) && !updated.LastEdited.Equal(note.LastEdited) {
		t.Error("Update() did not refresh lastEdited")
	}
}

func TestNoteServiceUpdateContentClearsSummary(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryNoteRepository()
	svc := NewNoteService(repo, zap.NewNop())
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, &dto.CreateNoteRequest{Title: "Notes", Content: "Version one."})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.UpdateSummary(ctx, note.ID, "A summary of version one."); err != nil {
		t.Fatalf("UpdateSummary() error = %v", err)
	}

	newContent := "Version two."
	updated, err := svc.Update(ctx, 1, note.ID, &dto.UpdateNoteRequest{Content: &newContent})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Summary != "" {
		t.Errorf("Update(content) summary = %q, want cleared", updated.Summary)
	}

	// An update that leaves content alone keeps the summary.
	if err := repo.UpdateSummary(ctx, note.ID, "A summary of version two."); err != nil {
		t.Fatalf("UpdateSummary() error = %v", err)
	}
	updated, err = svc.Update(ctx, 1, note.ID, &dto.UpdateNoteRequest{Title: "Renamed"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Summary != "A summary of version two." {
		t.Errorf("Update(title) summary = %q, want kept", updated.Summary)
	}
}

func TestNoteServiceListFilters(t *testing.T) {
	t.Parallel()

	svc := newTestNoteService()
	ctx := context.Background()

	seed := []dto.CreateNoteRequest{
		{Title: "Alpha plan", Content: "Quarterly planning.", Tags: []model.NoteTagRef{{ID: 1, Name: "work"}}},
		{Title: "Beta recipe", Content: "Soup with leeks.", Tags: []model.NoteTagRef{{ID: 2, Name: "cooking"}}},
		{Title: "Gamma plan", Content: "Planning the trip.", Tags: []model.NoteTagRef{{ID: 1, Name: "work"}}},
	}
	for i := range seed {
		if _, err := svc.Create(ctx, 1, &seed[i]); err != nil {
			t.Fatalf("Create(%d) error = %v", i, err)
		}
	}
	if _, err := svc.Create(ctx, 2, &dto.CreateNoteRequest{Title: "Other user plan", Content: "Planning too."}); err != nil {
		t.Fatalf("Create(other user) error = %v", err)
	}

	all, err := svc.List(ctx, 1, &dto.NoteFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() = %d notes, want 3 (no cross-user leakage)", len(all))
	}

	plans, err := svc.List(ctx, 1, &dto.NoteFilter{Search: "plan"})
	if err != nil {
		t.Fatalf("List(search) error = %v", err)
	}
	if len(plans) != 2 {
		t.Errorf("List(search=plan) = %d notes, want 2", len(plans))
	}

	work, err := svc.List(ctx, 1, &dto.NoteFilter{Tag: "work"})
	if err != nil {
		t.Fatalf("List(tag) error = %v", err)
	}
	if len(work) != 2 {
		t.Errorf("List(tag=work) = %d notes, want 2", len(work))
	}

	byTitle, err := svc.List(ctx, 1, &dto.NoteFilter{Sort: "title"})
	if err != nil {
		t.Fatalf("List(sort=title) error = %v", err)
	}
	if byTitle[0].Title != "Alpha plan" || byTitle[2].Title != "Gamma plan" {
		t.Errorf("List(sort=title) order = [%q %q %q]", byTitle[0].Title, byTitle[1].Title, byTitle[2].Title)
	}
}

func TestNoteServiceDelete(t *testing.T) {
	t.Parallel()

	svc := newTestNoteService()
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, &dto.CreateNoteRequest{Title: "Ephemeral", Content: "Gone soon."})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, 1, note.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, 1, note.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, 1, note.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

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

func newTestTagService() *TagService {
	return NewTagService(repository.NewMemoryTagRepository(), zap.NewNop())
}

func TestTagServiceCreateDefaults(t *testing.T) {
	t.Parallel()

	svc := newTestTagService()

	tag, err := svc.Create(context.Background(), 1, &dto.CreateTagRequest{Name: "  work  "})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tag.Name != "work" {
		t.Errorf("Create() name = %q, want trimmed %q", tag.Name, "work")
	}
	if tag.Color != model.DefaultTagColor {
		t.Errorf("Create() color = %q, want default %q", tag.Color, model.DefaultTagColor)
	}
}

func TestTagServiceDuplicateNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc := newTestTagService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, &dto.CreateTagRequest{Name: "Work"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := svc.Create(ctx, 1, &dto.CreateTagRequest{Name: "WORK"})
	if !errors.Is(err, apperrors.ErrDuplicateTag) {
		t.Errorf("Create(duplicate) error = %v, want ErrDuplicateTag", err)
	}

	// Different users may reuse a name.
	if _, err := svc.Create(ctx, 2, &dto.CreateTagRequest{Name: "work"}); err != nil {
		t.Errorf("Create() for other user error = %v", err)
	}
}

func TestTagServiceUpdate(t *testing.T) {
	t.Parallel()

	svc := newTestTagService()
	ctx := context.Background()

	work, err := svc.Create(ctx, 1, &dto.CreateTagRequest{Name: "work"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, 1, &dto.CreateTagRequest{Name: "home"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Renaming onto another tag's name conflicts, renaming onto itself does not.
	if _, err := svc.Update(ctx, 1, work.ID, &dto.UpdateTagRequest{Name: "Home"}); !errors.Is(err, apperrors.ErrDuplicateTag) {
		t.Errorf("Update(taken name) error = %v, want ErrDuplicateTag", err)
	}
	if _, err := svc.Update(ctx, 1, work.ID, &dto.UpdateTagRequest{Name: "Work"}); err != nil {
		t.Errorf("Update(own name, recased) error = %v", err)
	}

	updated, err := svc.Update(ctx, 1, work.ID, &dto.UpdateTagRequest{Color: "#abcdef"})
	if err != nil {
		t.Fatalf("Update(color) error = %v", err)
	}
	if updated.Color != "#abcdef" {
		t.Errorf("Update() color = %q, want %q", updated.Color, "#abcdef")
	}
	if updated.Name != "Work" {
		t.Errorf("Update() name = %q, want untouched %q", updated.Name, "Work")
	}
}

func TestTagServiceOwnership(t *testing.T) {
	t.Parallel()

	svc := newTestTagService()
	ctx := context.Background()

	tag, err := svc.Create(ctx, 1, &dto.CreateTagRequest{Name: "private"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Get(ctx, 2, tag.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("Get() as other user error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, 2, tag.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("Delete() as other user error = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(ctx, 1, 9999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestTagServiceListAndDelete(t *testing.T) {
	t.Parallel()

	svc := newTestTagService()
	ctx := context.Background()

	for _, name := range []string{"work", "workout", "home"} {
		if _, err := svc.Create(ctx, 1, &dto.CreateTagRequest{Name: name}); err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
	}
	if _, err := svc.Create(ctx, 2, &dto.CreateTagRequest{Name: "work"}); err != nil {
		t.Fatalf("Create() for other user error = %v", err)
	}

	all, err := svc.List(ctx, 1, &dto.TagFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() = %d tags, want 3", len(all))
	}

	matched, err := svc.List(ctx, 1, &dto.TagFilter{Search: "work"})
	if err != nil {
		t.Fatalf("List(search) error = %v", err)
	}
	if len(matched) != 2 {
		t.Errorf("List(search=work) = %d tags, want 2", len(matched))
	}

	if err := svc.Delete(ctx, 1, all[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	remaining, err := svc.List(ctx, 1, &dto.TagFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(remaining) != 2 {
		t.Errorf("List() after delete = %d tags, want 2", len(remaining))
	}
}

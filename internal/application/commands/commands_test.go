package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"linkshelf/internal/application"
	"linkshelf/internal/application/archive"
	"linkshelf/internal/domain"
	"linkshelf/internal/logger"
)

type memStore struct {
	saves int
}

func (s *memStore) Load() (*domain.Snapshot, error) { return nil, nil }

func (s *memStore) Save(*domain.Snapshot) error {
	s.saves++
	return nil
}

type env struct {
	tree    *domain.Tree
	manager *archive.Manager
	store   *memStore
}

// newEnv creates an empty tree and adds Work > Docs > Spec through the create commands
func newEnv(t *testing.T) *env {
	t.Helper()

	tree := domain.NewTree()
	store := &memStore{}
	manager, err := archive.Open(tree, store, archive.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	e := &env{tree: tree, manager: manager, store: store}

	ctx := context.Background()
	steps := []interface {
		Execute(context.Context) (*CreateResult, error)
	}{
		NewAddCategoryCommand(tree, manager.Paths(), "", "Work", ""),
		NewAddCategoryCommand(tree, manager.Paths(), "Work", "Docs", "reference material"),
		NewAddLinkCommand(tree, manager.Paths(), "Work > Docs", "Spec", "https://go.dev/ref/spec"),
	}
	for _, step := range steps {
		if _, err := step.Execute(ctx); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}
	return e
}

func TestAddCommands(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	result, err := NewAddCategoryCommand(e.tree, e.manager.Paths(), "Work > Docs", "Drafts", "").Execute(ctx)
	if err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if result.Path != "Work > Docs > Drafts" {
		t.Errorf("Path = %q, want %q", result.Path, "Work > Docs > Drafts")
	}
	if result.Message != "Created category Work > Docs > Drafts" {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

func TestAddCommands_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	paths := e.manager.Paths()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "empty category name",
			run: func() error {
				_, err := NewAddCategoryCommand(e.tree, paths, "", " ", "").Execute(ctx)
				return err
			},
			wantErr: application.ErrInvalidOperation,
		},
		{
			name: "path separator in name",
			run: func() error {
				_, err := NewAddCategoryCommand(e.tree, paths, "", "A > B", "").Execute(ctx)
				return err
			},
			wantErr: application.ErrInvalidOperation,
		},
		{
			name: "reserved token in name",
			run: func() error {
				_, err := NewAddCategoryCommand(e.tree, paths, "", "A::B", "").Execute(ctx)
				return err
			},
			wantErr: application.ErrInvalidOperation,
		},
		{
			name: "missing parent",
			run: func() error {
				_, err := NewAddCategoryCommand(e.tree, paths, "Home", "Garden", "").Execute(ctx)
				return err
			},
			wantErr: application.ErrNotFound,
		},
		{
			name: "link under a link",
			run: func() error {
				_, err := NewAddLinkCommand(e.tree, paths, "Work > Docs > Spec", "Sub", "https://x").Execute(ctx)
				return err
			},
			wantErr: application.ErrInvalidOperation,
		},
		{
			name: "link without url",
			run: func() error {
				_, err := NewAddLinkCommand(e.tree, paths, "Work > Docs", "Empty", "").Execute(ctx)
				return err
			},
			wantErr: application.ErrInvalidOperation,
		},
		{
			name: "link without category",
			run: func() error {
				_, err := NewAddLinkCommand(e.tree, paths, "", "Loose", "https://x").Execute(ctx)
				return err
			},
			wantErr: application.ErrInvalidOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestArchiveAndRestoreCommands(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	archived, err := NewArchiveCommand(e.manager, "Work > Docs").Execute(ctx)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if archived.Label != "Archived (1)" {
		t.Errorf("Label = %q, want %q", archived.Label, "Archived (1)")
	}
	if !strings.HasPrefix(archived.Message, "Archived Work > Docs [") {
		t.Errorf("unexpected message: %q", archived.Message)
	}

	list, err := NewListArchiveCommand(e.manager).Execute(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list.Entries) != 1 || list.Entries[0].OriginalPath != "Work" {
		t.Fatalf("unexpected entries: %+v", list.Entries)
	}

	restored, err := NewRestoreCommand(e.manager, ShortID(archived.Node.ID)).Execute(ctx)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.Path != "Work > Docs" || restored.Degraded {
		t.Errorf("unexpected restore result: %+v", restored)
	}
	if restored.Kind != archive.EntryCategory {
		t.Errorf("Kind = %s, want %s", restored.Kind, archive.EntryCategory)
	}
	if e.manager.Summary().Count != 0 {
		t.Errorf("archive not empty after restore")
	}
}

func TestArchiveCommand_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := NewArchiveCommand(e.manager, "").Execute(ctx); !errors.Is(err, application.ErrInvalidOperation) {
		t.Errorf("empty path: got %v", err)
	}
	if _, err := NewArchiveCommand(e.manager, "Work::Docs").Execute(ctx); !errors.Is(err, application.ErrInvalidOperation) {
		t.Errorf("reserved token: got %v", err)
	}
	if _, err := NewArchiveCommand(e.manager, "Work > Nope").Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("missing path: got %v", err)
	}
}

func TestRateAndRestoreRatingCommands(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first, err := NewRateCommand(e.manager, "Work > Docs > Spec", "Quality", 8, "thorough").Execute(ctx)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if first.ArchivedID != "" {
		t.Errorf("first rating archived %q", first.ArchivedID)
	}

	second, err := NewRateCommand(e.manager, "Work > Docs > Spec", "Quality", 4, "dated").Execute(ctx)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if second.ArchivedID == "" {
		t.Fatal("previous rating was not archived")
	}
	if !strings.Contains(second.Message, "previous value archived as "+ShortID(second.ArchivedID)) {
		t.Errorf("unexpected message: %q", second.Message)
	}

	// restore-rating refuses non-rating entries
	archivedLink, err := NewArchiveCommand(e.manager, "Work > Docs > Spec").Execute(ctx)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if _, err := NewRestoreRatingCommand(e.manager, archivedLink.Node.ID).Execute(ctx); !errors.Is(err, application.ErrInvalidOperation) {
		t.Errorf("restore-rating on a link: got %v", err)
	}
	if _, err := NewRestoreCommand(e.manager, archivedLink.Node.ID).Execute(ctx); err != nil {
		t.Fatalf("Restore link failed: %v", err)
	}

	restored, err := NewRestoreRatingCommand(e.manager, second.ArchivedID).Execute(ctx)
	if err != nil {
		t.Fatalf("RestoreRating failed: %v", err)
	}
	if restored.Kind != archive.EntryRating || restored.Path != "Work > Docs > Spec" {
		t.Errorf("unexpected restore result: %+v", restored)
	}
	if !strings.Contains(restored.Message, "Restored Quality = 8 on Work > Docs > Spec") {
		t.Errorf("unexpected message: %q", restored.Message)
	}
}

func TestDeleteCommand(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	archived, err := NewArchiveCommand(e.manager, "Work > Docs > Spec").Execute(ctx)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	if _, err := NewDeleteCommand(e.manager, archived.Node.ID, false).Execute(ctx); !errors.Is(err, application.ErrInvalidOperation) {
		t.Errorf("unconfirmed delete: got %v", err)
	}
	if e.manager.Summary().Count != 1 {
		t.Fatal("unconfirmed delete removed the entry")
	}

	result, err := NewDeleteCommand(e.manager, archived.Node.ID, true).Execute(ctx)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if result.DeletedID != archived.Node.ID {
		t.Errorf("DeletedID = %q, want %q", result.DeletedID, archived.Node.ID)
	}
	if e.manager.Summary().Label != "Archived (0)" {
		t.Errorf("Label = %q after delete", e.manager.Summary().Label)
	}
	if _, err := NewDeleteCommand(e.manager, archived.Node.ID, true).Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("second delete: got %v", err)
	}
}

func TestCheckArchiveEligibility(t *testing.T) {
	e := newEnv(t)
	work, _ := e.manager.Resolve("Work")

	tests := []struct {
		name string
		node *domain.Node
		want bool
	}{
		{"nil", nil, false},
		{"archive root", e.tree.ArchiveRoot(), false},
		{"active category", work, true},
		{"archived node", func() *domain.Node {
			n := domain.NewLink("Old", "https://x")
			n.MarkArchived("Work", n.CreatedDate)
			return n
		}(), false},
		{"unknown kind", &domain.Node{Name: "?"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckArchiveEligibility(tt.node)
			if got.CanArchive != tt.want {
				t.Errorf("CanArchive = %v, want %v (%s)", got.CanArchive, tt.want, got.Reason)
			}
			if !got.CanArchive && got.Reason == "" {
				t.Error("expected a reason")
			}
		})
	}
}

func TestCheckRestoreEligibility(t *testing.T) {
	link := domain.NewLink("Spec", "https://go.dev/ref/spec")

	if got := CheckRestoreEligibility(archive.Entry{}); got.CanRestore {
		t.Error("empty entry should not be restorable")
	}
	if got := CheckRestoreEligibility(archive.Entry{Node: link, Kind: archive.EntryLink}); got.CanRestore {
		t.Error("link without original path should not be restorable")
	}
	if got := CheckRestoreEligibility(archive.Entry{Node: link, Kind: archive.EntryLink, OriginalPath: "Work"}); !got.CanRestore {
		t.Errorf("expected restorable, got %q", got.Reason)
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}

package archive

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkshelf/internal/adapters/jsonfile"
	"linkshelf/internal/application"
	"linkshelf/internal/domain"
	"linkshelf/internal/logger"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

// stubStore keeps snapshots in memory and can be told to fail
type stubStore struct {
	snap    *domain.Snapshot
	loadErr error
	saveErr error
	saves   []*domain.Snapshot
}

func (s *stubStore) Load() (*domain.Snapshot, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.snap, nil
}

func (s *stubStore) Save(snap *domain.Snapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves = append(s.saves, snap)
	return nil
}

func (s *stubStore) last() *domain.Snapshot {
	if len(s.saves) == 0 {
		return nil
	}
	return s.saves[len(s.saves)-1]
}

type fixture struct {
	tree    *domain.Tree
	manager *Manager
	nodes   map[string]*domain.Node
}

func (f *fixture) node(path string) *domain.Node {
	return f.nodes[path]
}

// newFixture builds the tree below and opens a manager over it:
//
//	Work > Projects > Alpha
//	Work > Docs > Spec (link)
//	A > Report
//	B > Report
func newFixture(t *testing.T, store *stubStore) *fixture {
	t.Helper()

	tree := domain.NewTree()
	f := &fixture{tree: tree, nodes: map[string]*domain.Node{}}
	add := func(path string, parent, n *domain.Node) *domain.Node {
		require.NoError(t, tree.AddNode(parent, n))
		f.nodes[path] = n
		return n
	}

	work := add("Work", tree.Root(), domain.NewCategory("Work", ""))
	projects := add("Work > Projects", work, domain.NewCategory("Projects", ""))
	add("Work > Projects > Alpha", projects, domain.NewCategory("Alpha", "first client"))
	docs := add("Work > Docs", work, domain.NewCategory("Docs", ""))
	add("Work > Docs > Spec", docs, domain.NewLink("Spec", "https://go.dev/ref/spec"))
	a := add("A", tree.Root(), domain.NewCategory("A", ""))
	add("A > Report", a, domain.NewCategory("Report", ""))
	b := add("B", tree.Root(), domain.NewCategory("B", ""))
	add("B > Report", b, domain.NewCategory("Report", ""))

	manager, err := Open(tree, store, WithLogger(logger.NewNop()), WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	f.manager = manager
	return f
}

func TestOpen_RequiresCollaborators(t *testing.T) {
	_, err := Open(nil, &stubStore{})
	assert.Error(t, err)

	_, err = Open(domain.NewTree(), nil)
	assert.Error(t, err)
}

func TestOpen_LoadFailureStartsEmpty(t *testing.T) {
	store := &stubStore{loadErr: errors.New("disk on fire")}
	f := newFixture(t, store)

	assert.Equal(t, "Archived (0)", f.tree.ArchiveRoot().Name)
	assert.Equal(t, 0, f.manager.Summary().Count)
}

func TestOpen_AttachesSnapshot(t *testing.T) {
	archived := testNow.Add(-time.Hour)
	store := &stubStore{snap: &domain.Snapshot{
		ArchivedCategories: []domain.CategoryRecord{{
			ID:                 "cat-1",
			Name:               "Old",
			ArchivedDate:       &archived,
			OriginalParentPath: "Work",
			Children:           []domain.CategoryRecord{{ID: "cat-2", Name: "Nested"}},
			Links:              []domain.LinkRecord{{ID: "link-1", Title: "Inner", URL: "https://example.com"}},
		}},
		ArchivedLinks: []domain.LinkRecord{{
			Title:                "Loose",
			URL:                  "https://example.org",
			ArchivedDate:         &archived,
			OriginalCategoryPath: "Work > Docs",
		}},
	}}
	f := newFixture(t, store)

	assert.Equal(t, "Archived (2)", f.tree.ArchiveRoot().Name)
	assert.False(t, f.tree.ArchiveRoot().Expanded)

	old, ok := f.tree.Node("cat-1")
	require.True(t, ok)
	assert.Equal(t, "Work", old.OriginalPath)
	assert.Len(t, f.tree.Children(old), 2)

	entries := f.manager.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, EntryCategory, entries[0].Kind)
	assert.Equal(t, EntryLink, entries[1].Kind)
	assert.NotEmpty(t, entries[1].Node.ID, "records without an ID get a fresh one")
}

func TestOpen_ConflictingRecordIsHeld(t *testing.T) {
	store := &stubStore{snap: &domain.Snapshot{
		ArchivedCategories: []domain.CategoryRecord{
			{ID: "dup", Name: "First"},
			{ID: "dup", Name: "Second"},
		},
	}}
	f := newFixture(t, store)

	require.Len(t, f.tree.Children(f.tree.ArchiveRoot()), 1)
	assert.Equal(t, "First", f.tree.Children(f.tree.ArchiveRoot())[0].Name)
	assert.Equal(t, "Archived (1)", f.tree.ArchiveRoot().Name)

	require.NoError(t, f.manager.ArchiveLink(f.node("Work > Docs > Spec")))
	saved := store.last()
	require.NotNil(t, saved)
	require.Len(t, saved.ArchivedCategories, 2)
	assert.Equal(t, "First", saved.ArchivedCategories[0].Name)
	assert.Equal(t, "Second", saved.ArchivedCategories[1].Name)
	assert.Len(t, saved.ArchivedLinks, 1)
}

func TestOpen_StaleTreeKeepsOtherEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.json")

	tree := domain.NewTree()
	x := domain.NewCategory("X", "")
	y := domain.NewCategory("Y", "")
	require.NoError(t, tree.AddNode(tree.Root(), x))
	require.NoError(t, tree.AddNode(tree.Root(), y))

	m, err := Open(tree, jsonfile.NewStore(path, logger.NewNop()))
	require.NoError(t, err)
	require.NoError(t, m.ArchiveCategory(x))
	require.NoError(t, m.ArchiveCategory(y))

	// The tree database still holds Y as an active node
	stale := domain.NewTree()
	require.NoError(t, stale.AddNode(stale.Root(), &domain.Node{ID: y.ID, Kind: domain.KindCategory, Name: "Y"}))
	z := domain.NewCategory("Z", "")
	require.NoError(t, stale.AddNode(stale.Root(), z))

	m2, err := Open(stale, jsonfile.NewStore(path, logger.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, "Archived (1)", stale.ArchiveRoot().Name)
	_, err = m2.Find(x.ID)
	require.NoError(t, err)

	require.NoError(t, m2.ArchiveCategory(z))

	// Y is back out of the active tree; every archived record is still on disk
	fresh := domain.NewTree()
	m3, err := Open(fresh, jsonfile.NewStore(path, logger.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, "Archived (3)", fresh.ArchiveRoot().Name)
	for _, id := range []string{x.ID, y.ID, z.ID} {
		_, err := m3.Find(id)
		assert.NoError(t, err, id)
	}
}

func TestArchiveRestoreCategory_Scenario(t *testing.T) {
	store := &stubStore{}
	f := newFixture(t, store)
	alpha := f.node("Work > Projects > Alpha")

	require.NoError(t, f.manager.ArchiveCategory(alpha))

	assert.Equal(t, "Archived (1)", f.tree.ArchiveRoot().Name)
	assert.Equal(t, f.tree.ArchiveRoot(), f.tree.Parent(alpha))
	assert.Equal(t, "Work > Projects", alpha.OriginalPath)
	require.NotNil(t, alpha.ArchivedDate)
	assert.Equal(t, testNow, *alpha.ArchivedDate)
	assert.Empty(t, f.tree.Children(f.node("Work > Projects")))

	saved := store.last()
	require.NotNil(t, saved)
	require.Len(t, saved.ArchivedCategories, 1)
	assert.Equal(t, "Work > Projects", saved.ArchivedCategories[0].OriginalParentPath)

	result, err := f.manager.RestoreCategory(alpha)
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	assert.Equal(t, "Work > Projects > Alpha", result.Path)
	assert.Same(t, f.node("Work > Projects"), f.tree.Parent(alpha))
	assert.Equal(t, "Archived (0)", f.tree.ArchiveRoot().Name)
	assert.Nil(t, alpha.ArchivedDate)
	assert.Empty(t, alpha.OriginalPath)
	assert.True(t, store.last().IsEmpty())
}

func TestArchiveCategory_CarriesSubtree(t *testing.T) {
	f := newFixture(t, &stubStore{})
	docs := f.node("Work > Docs")
	spec := f.node("Work > Docs > Spec")

	require.NoError(t, f.manager.ArchiveCategory(docs))

	assert.Same(t, docs, f.tree.Parent(spec))
	_, err := f.manager.Resolve("Work > Docs > Spec")
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestRestoreCategory_TopLevelOrigin(t *testing.T) {
	f := newFixture(t, &stubStore{})
	a := f.node("A")

	require.NoError(t, f.manager.ArchiveCategory(a))
	assert.Empty(t, a.OriginalPath)

	result, err := f.manager.RestoreCategory(a)
	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.Same(t, f.tree.Root(), f.tree.Parent(a))
}

func TestRestoreCategory_MissingParentDegradesToRoot(t *testing.T) {
	f := newFixture(t, &stubStore{})
	alpha := f.node("Work > Projects > Alpha")

	require.NoError(t, f.manager.ArchiveCategory(alpha))
	require.NoError(t, f.tree.RemoveNode(f.node("Work > Projects")))

	result, err := f.manager.RestoreCategory(alpha)
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.Equal(t, "Work > Projects", result.MissingPath)
	assert.Equal(t, "Alpha", result.Path)
	assert.Same(t, f.tree.Root(), f.tree.Parent(alpha))
	assert.Equal(t, "Archived (0)", f.tree.ArchiveRoot().Name)
}

func TestRestoreCategory_RejectsRatingEntry(t *testing.T) {
	f := newFixture(t, &stubStore{})
	spec := f.node("Work > Docs > Spec")
	spec.SetRating(domain.RatingValue{RatingName: "Quality", Score: 7})

	changed, err := f.manager.ChangeRating(spec, "Quality", 3, "")
	require.NoError(t, err)
	require.NotNil(t, changed.Archived)

	_, err = f.manager.RestoreCategory(changed.Archived)
	assert.ErrorIs(t, err, application.ErrInvalidOperation)
}

func TestRestoreLink(t *testing.T) {
	f := newFixture(t, &stubStore{})
	spec := f.node("Work > Docs > Spec")

	require.NoError(t, f.manager.ArchiveLink(spec))
	assert.Equal(t, "Work > Docs", spec.OriginalPath)

	result, err := f.manager.RestoreLink(spec)
	require.NoError(t, err)
	assert.Equal(t, "Work > Docs > Spec", result.Path)
	assert.Same(t, f.node("Work > Docs"), result.Parent)
}

func TestRestoreLink_MissingCategoryLeavesArchive(t *testing.T) {
	store := &stubStore{}
	f := newFixture(t, store)
	spec := f.node("Work > Docs > Spec")

	require.NoError(t, f.manager.ArchiveLink(spec))
	saves := len(store.saves)
	require.NoError(t, f.tree.RemoveNode(f.node("Work > Docs")))

	_, err := f.manager.RestoreLink(spec)
	assert.ErrorIs(t, err, application.ErrNotFound)

	assert.Same(t, f.tree.ArchiveRoot(), f.tree.Parent(spec))
	assert.Equal(t, "Work > Docs", spec.OriginalPath)
	assert.Equal(t, "Archived (1)", f.tree.ArchiveRoot().Name)
	assert.Len(t, store.saves, saves, "a failed restore must not save")
}

func TestRestoreLink_NoOriginalPath(t *testing.T) {
	store := &stubStore{snap: &domain.Snapshot{
		ArchivedLinks: []domain.LinkRecord{{ID: "orphan", Title: "Orphan", URL: "https://example.com"}},
	}}
	f := newFixture(t, store)
	orphan, ok := f.tree.Node("orphan")
	require.True(t, ok)

	_, err := f.manager.RestoreLink(orphan)
	var valErr *application.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "originalPath", valErr.Field)
}

func TestArchive_Rejections(t *testing.T) {
	f := newFixture(t, &stubStore{})
	alpha := f.node("Work > Projects > Alpha")
	spec := f.node("Work > Docs > Spec")

	tests := []struct {
		name string
		run  func() error
	}{
		{"link as category", func() error { return f.manager.ArchiveCategory(spec) }},
		{"category as link", func() error { return f.manager.ArchiveLink(alpha) }},
		{"nil node", func() error { return f.manager.ArchiveCategory(nil) }},
		{"archive root", func() error { return f.manager.ArchiveCategory(f.tree.ArchiveRoot()) }},
		{"tree root", func() error { return f.manager.ArchiveCategory(f.tree.Root()) }},
		{"foreign node", func() error { return f.manager.ArchiveCategory(domain.NewCategory("Stray", "")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), application.ErrInvalidOperation)
		})
	}
	assert.Equal(t, "Archived (0)", f.tree.ArchiveRoot().Name)
}

func TestArchive_AlreadyArchived(t *testing.T) {
	f := newFixture(t, &stubStore{})
	docs := f.node("Work > Docs")
	spec := f.node("Work > Docs > Spec")

	require.NoError(t, f.manager.ArchiveCategory(docs))

	assert.ErrorIs(t, f.manager.ArchiveCategory(docs), application.ErrInvalidOperation)
	assert.ErrorIs(t, f.manager.ArchiveLink(spec), application.ErrInvalidOperation, "nested archived nodes are not active")
}

func TestRestore_NotAnArchiveEntry(t *testing.T) {
	f := newFixture(t, &stubStore{})
	docs := f.node("Work > Docs")
	spec := f.node("Work > Docs > Spec")

	_, err := f.manager.RestoreCategory(docs)
	assert.ErrorIs(t, err, application.ErrInvalidOperation)

	require.NoError(t, f.manager.ArchiveCategory(docs))
	_, err = f.manager.RestoreLink(spec)
	assert.ErrorIs(t, err, application.ErrInvalidOperation, "only direct archive children can be restored")
}

func TestPermanentlyDelete(t *testing.T) {
	store := &stubStore{}
	f := newFixture(t, store)
	docs := f.node("Work > Docs")
	spec := f.node("Work > Docs > Spec")

	assert.ErrorIs(t, f.manager.PermanentlyDelete(docs), application.ErrInvalidOperation, "active nodes cannot be deleted")
	assert.ErrorIs(t, f.manager.PermanentlyDelete(nil), application.ErrInvalidOperation)

	require.NoError(t, f.manager.ArchiveCategory(docs))
	require.NoError(t, f.manager.PermanentlyDelete(docs))

	assert.False(t, f.tree.Contains(docs))
	assert.False(t, f.tree.Contains(spec))
	assert.Equal(t, "Archived (0)", f.tree.ArchiveRoot().Name)
	assert.True(t, store.last().IsEmpty())
}

func TestArchiveCount_TracksOperations(t *testing.T) {
	f := newFixture(t, &stubStore{})
	docs := f.node("Work > Docs")

	var links []*domain.Node
	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		link := domain.NewLink(title, "https://example.com/"+title)
		require.NoError(t, f.tree.AddNode(docs, link))
		links = append(links, link)
	}

	for _, link := range links {
		require.NoError(t, f.manager.ArchiveLink(link))
	}
	assert.Equal(t, "Archived (5)", f.tree.ArchiveRoot().Name)

	_, err := f.manager.RestoreLink(links[0])
	require.NoError(t, err)
	_, err = f.manager.RestoreLink(links[1])
	require.NoError(t, err)
	require.NoError(t, f.manager.PermanentlyDelete(links[2]))

	summary := f.manager.Summary()
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 2, summary.Links)
	assert.Equal(t, "Archived (2)", summary.Label)
	assert.Equal(t, "Archived (2)", f.tree.ArchiveRoot().Name)
	assert.Len(t, f.tree.Children(f.tree.ArchiveRoot()), 2)
}

func TestPersistFailure_KeepsInMemoryChange(t *testing.T) {
	saveErr := errors.New("read-only file system")
	f := newFixture(t, &stubStore{saveErr: saveErr})
	alpha := f.node("Work > Projects > Alpha")

	err := f.manager.ArchiveCategory(alpha)

	var persistErr *application.PersistError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "archive category", persistErr.Op)
	assert.ErrorIs(t, err, application.ErrNotPersisted)
	assert.ErrorIs(t, err, saveErr)

	assert.Same(t, f.tree.ArchiveRoot(), f.tree.Parent(alpha))
	assert.Equal(t, "Archived (1)", f.tree.ArchiveRoot().Name)
}

func TestManager_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.json")

	tree := domain.NewTree()
	work := domain.NewCategory("Work", "")
	alpha := domain.NewCategory("Alpha", "")
	require.NoError(t, tree.AddNode(tree.Root(), work))
	require.NoError(t, tree.AddNode(work, alpha))

	m, err := Open(tree, jsonfile.NewStore(path, logger.NewNop()))
	require.NoError(t, err)
	require.NoError(t, m.ArchiveCategory(alpha))

	// Fresh tree with only the active part, as the tree database would hold it
	reopened := domain.NewTree()
	work2 := &domain.Node{ID: work.ID, Kind: domain.KindCategory, Name: "Work"}
	require.NoError(t, reopened.AddNode(reopened.Root(), work2))

	m2, err := Open(reopened, jsonfile.NewStore(path, logger.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, "Archived (1)", reopened.ArchiveRoot().Name)

	entry, err := m2.Find(alpha.ID)
	require.NoError(t, err)
	result, err := m2.RestoreCategory(entry.Node)
	require.NoError(t, err)
	assert.Equal(t, "Work > Alpha", result.Path)
	assert.Same(t, work2, reopened.Parent(entry.Node))
}

func TestManager_ConcurrentArchive(t *testing.T) {
	f := newFixture(t, &stubStore{})
	docs := f.node("Work > Docs")

	const n = 20
	links := make([]*domain.Node, n)
	for i := range links {
		links[i] = domain.NewLink("Link", "https://example.com")
		require.NoError(t, f.tree.AddNode(docs, links[i]))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, link := range links {
		wg.Add(1)
		go func(link *domain.Node) {
			defer wg.Done()
			errs <- f.manager.ArchiveLink(link)
		}(link)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, domain.ArchiveRootLabel(n), f.manager.Summary().Label)
}

func TestManager_CategoryRatingsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.json")

	tree := domain.NewTree()
	a := domain.NewCategory("A", "")
	report := domain.NewCategory("Report", "")
	require.NoError(t, tree.AddNode(tree.Root(), a))
	require.NoError(t, tree.AddNode(a, report))

	m, err := Open(tree, jsonfile.NewStore(path, logger.NewNop()))
	require.NoError(t, err)
	_, err = m.ChangeRating(a, "Priority", 2, "")
	require.NoError(t, err)
	_, err = m.ChangeRating(report, "Quality", 8, "good")
	require.NoError(t, err)
	require.NoError(t, m.ArchiveCategory(a))

	reopened := domain.NewTree()
	m2, err := Open(reopened, jsonfile.NewStore(path, logger.NewNop()))
	require.NoError(t, err)

	entry, err := m2.Find(a.ID)
	require.NoError(t, err)
	result, err := m2.RestoreCategory(entry.Node)
	require.NoError(t, err)
	assert.Equal(t, "A", result.Path)

	priority, ok := entry.Node.Rating("Priority")
	require.True(t, ok)
	assert.Equal(t, 2, priority.Score)

	restoredReport, ok := reopened.Node(report.ID)
	require.True(t, ok)
	quality, ok := restoredReport.Rating("Quality")
	require.True(t, ok, "nested category rating lost")
	assert.Equal(t, 8, quality.Score)
	assert.Equal(t, "good", quality.Reason)
}

package attrdocs

import (
	"path/filepath"
	"testing"

	"docscope/internal/engine/members"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "attrdocs.db"), "testproj", 0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("  ", "p", 0); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpenRejectsDirectory(t *testing.T) {
	if _, err := Open(t.TempDir(), "p", 0); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestUpsertAndFind(t *testing.T) {
	store := newTestStore(t)

	if err := store.UpsertDoc("pkg.Child", "attr1", "first attribute"); err != nil {
		t.Fatal(err)
	}
	if err := store.UpsertDoc("pkg.Child", "attr2", ""); err != nil {
		t.Fatal(err)
	}
	if err := store.UpsertDoc("pkg.Other", "attr3", "elsewhere"); err != nil {
		t.Fatal(err)
	}

	docs, err := store.FindAttrDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 facts, got %d", len(docs))
	}
	want := members.AttrDoc{Namespace: "pkg.Child", Name: "attr1"}
	if docs[0] != want {
		t.Fatalf("expected ordered facts starting with %+v, got %+v", want, docs[0])
	}
}

func TestUpsertReplaces(t *testing.T) {
	store := newTestStore(t)

	if err := store.UpsertDoc("pkg.Child", "attr1", "old"); err != nil {
		t.Fatal(err)
	}
	if err := store.UpsertDoc("pkg.Child", "attr1", "new"); err != nil {
		t.Fatal(err)
	}

	docs, err := store.FindAttrDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("upsert must replace, got %d rows", len(docs))
	}
	doc, err := store.Doc("pkg.Child", "attr1")
	if err != nil {
		t.Fatal(err)
	}
	if doc != "new" {
		t.Fatalf("expected replaced doc text, got %q", doc)
	}
}

func TestDocUnknownIsEmpty(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Doc("pkg.Child", "missing")
	if err != nil {
		t.Fatal(err)
	}
	if doc != "" {
		t.Fatalf("unknown attribute must yield empty doc, got %q", doc)
	}
}

func TestDeleteNamespace(t *testing.T) {
	store := newTestStore(t)

	if err := store.UpsertDoc("pkg.Child", "attr1", ""); err != nil {
		t.Fatal(err)
	}
	if err := store.UpsertDoc("pkg.Other", "attr2", ""); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteNamespace("pkg.Child"); err != nil {
		t.Fatal(err)
	}

	docs, err := store.FindAttrDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Namespace != "pkg.Other" {
		t.Fatalf("delete must only drop the named namespace, got %+v", docs)
	}
}

func TestProjectsIsolated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.db")

	a, err := Open(path, "projA", 0)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	if err := a.UpsertDoc("pkg.Child", "attr1", ""); err != nil {
		t.Fatal(err)
	}

	b, err := Open(path, "projB", 0)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	docs, err := b.FindAttrDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 0 {
		t.Fatalf("project keys must isolate facts, got %+v", docs)
	}
}

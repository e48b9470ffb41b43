package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/tenantdex/internal/domain"
	domdoc "github.com/kailas-cloud/tenantdex/internal/domain/document"
	"github.com/kailas-cloud/tenantdex/internal/domain/upload"
	"github.com/kailas-cloud/tenantdex/internal/index"
)

// --- Mocks ---

type mockCorpus struct {
	docs     []domdoc.Document
	err      error
	replaced int
}

func (m *mockCorpus) Add(doc domdoc.Document) error { return m.Load([]domdoc.Document{doc}) }

func (m *mockCorpus) Load(docs []domdoc.Document) error {
	if m.err != nil {
		return m.err
	}
	m.docs = append(m.docs, docs...)
	return nil
}

func (m *mockCorpus) Replace(docs []domdoc.Document) error {
	if m.err != nil {
		return m.err
	}
	m.replaced++
	m.docs = append([]domdoc.Document(nil), docs...)
	return nil
}

func (m *mockCorpus) Reset() { m.docs = nil }

func (m *mockCorpus) Stats() index.Stats { return index.Stats{Documents: len(m.docs)} }

type mockFolder struct {
	docs    []domdoc.Document
	err     error
	lastDir string
	lastTen string
}

func (m *mockFolder) Read(_ context.Context, dir, tenant string) ([]domdoc.Document, error) {
	m.lastDir, m.lastTen = dir, tenant
	return m.docs, m.err
}

type mockArchive struct {
	saved   []upload.Upload
	saveErr error
	list     []upload.Upload
	listErr  error
	purged   int
	purgeErr error
}

func (m *mockArchive) Save(_ context.Context, u upload.Upload) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, u)
	return nil
}

func (m *mockArchive) List(_ context.Context) ([]upload.Upload, error) { return m.list, m.listErr }

func (m *mockArchive) Purge(_ context.Context) (int, error) {
	if m.purgeErr != nil {
		return 0, m.purgeErr
	}
	n := len(m.saved) + len(m.list)
	m.purged += n
	m.saved, m.list = nil, nil
	return n, nil
}

func folderDocs(names ...string) []domdoc.Document {
	out := make([]domdoc.Document, len(names))
	for i, n := range names {
		out[i] = domdoc.Reconstruct(n, n, "demo", domdoc.Text("text of "+n))
	}
	return out
}

// --- Tests ---

func TestUpload_TextFile(t *testing.T) {
	c := &mockCorpus{}
	a := &mockArchive{}
	svc := New(c, &mockFolder{}, a, Samples{}, nil)

	rc, err := svc.Upload(context.Background(), "acme", "notes.txt", []byte("refund policy"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(rc.ID, "_notes.txt") || len(rc.ID) != 32+1+len("notes.txt") {
		t.Errorf("ID = %q", rc.ID)
	}
	if rc.Tenant != "acme" || rc.Kind != domdoc.KindText {
		t.Errorf("receipt = %+v", rc)
	}
	if len(c.docs) != 1 || c.docs[0].Title() != "notes.txt" || c.docs[0].Text() != "refund policy" {
		t.Fatalf("corpus docs = %+v", c.docs)
	}
	if len(a.saved) != 1 || a.saved[0].ID != rc.ID {
		t.Errorf("archive saved = %+v", a.saved)
	}
}

func TestUpload_BinaryFileIsUnparsed(t *testing.T) {
	c := &mockCorpus{}
	svc := New(c, &mockFolder{}, nil, Samples{}, nil)

	rc, err := svc.Upload(context.Background(), "demo", "image.png", []byte{0xff, 0xd8, 0xff, 0xe0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rc.Kind != domdoc.KindUnparsed {
		t.Errorf("Kind = %q", rc.Kind)
	}
	if c.docs[0].Text() != domdoc.UnparsedPlaceholder {
		t.Errorf("Text() = %q", c.docs[0].Text())
	}
}

func TestUpload_ArchiveFailureIsNotFatal(t *testing.T) {
	c := &mockCorpus{}
	svc := New(c, &mockFolder{}, &mockArchive{saveErr: errors.New("down")}, Samples{}, nil)

	if _, err := svc.Upload(context.Background(), "demo", "a.md", []byte("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.docs) != 1 {
		t.Error("document should still be indexed")
	}
}

func TestUpload_Validation(t *testing.T) {
	svc := New(&mockCorpus{}, &mockFolder{}, nil, Samples{}, nil)

	if _, err := svc.Upload(context.Background(), "", "a.md", []byte("x")); !errors.Is(err, domain.ErrInvalidDocument) {
		t.Errorf("empty tenant: expected ErrInvalidDocument, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), "demo", "", []byte("x")); !errors.Is(err, domain.ErrInvalidDocument) {
		t.Errorf("empty filename: expected ErrInvalidDocument, got %v", err)
	}
}

func TestUpload_LargeTextFile(t *testing.T) {
	c := &mockCorpus{}
	svc := New(c, &mockFolder{}, nil, Samples{}, nil)

	big := []byte(strings.Repeat("refund policy ", 15000))
	rc, err := svc.Upload(context.Background(), "demo", "big.md", big)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rc.Kind != domdoc.KindText || len(c.docs) != 1 || len(c.docs[0].Text()) != len(big) {
		t.Errorf("receipt = %+v, docs = %d", rc, len(c.docs))
	}
}

func TestUpload_RebuildFailureNotArchived(t *testing.T) {
	a := &mockArchive{}
	svc := New(&mockCorpus{err: domain.ErrRebuildFailed}, &mockFolder{}, a, Samples{}, nil)

	_, err := svc.Upload(context.Background(), "demo", "a.md", []byte("x"))
	if !errors.Is(err, domain.ErrRebuildFailed) {
		t.Fatalf("expected ErrRebuildFailed, got %v", err)
	}
	if len(a.saved) != 0 {
		t.Error("failed upload must not be archived")
	}
}

func TestLoadFolder(t *testing.T) {
	c := &mockCorpus{docs: folderDocs("existing.md")}
	f := &mockFolder{docs: folderDocs("a.md", "b.md")}
	svc := New(c, f, nil, Samples{}, nil)

	n, err := svc.LoadFolder(context.Background(), "/docs", "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || len(c.docs) != 3 {
		t.Errorf("loaded %d, corpus has %d", n, len(c.docs))
	}
	if f.lastDir != "/docs" || f.lastTen != "acme" {
		t.Errorf("folder read with (%q, %q)", f.lastDir, f.lastTen)
	}
}

func TestLoadFolder_ReadError(t *testing.T) {
	svc := New(&mockCorpus{}, &mockFolder{err: domain.ErrSourceUnavailable}, nil, Samples{}, nil)
	if _, err := svc.LoadFolder(context.Background(), "/nope", "demo"); !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestReloadSamples_Replaces(t *testing.T) {
	c := &mockCorpus{docs: folderDocs("uploaded.txt")}
	f := &mockFolder{docs: folderDocs("faq.md")}
	svc := New(c, f, nil, Samples{Dir: "sample_docs", Tenant: "demo"}, nil)

	n, err := svc.ReloadSamples(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || c.replaced != 1 || len(c.docs) != 1 || c.docs[0].ID() != "faq.md" {
		t.Errorf("n=%d replaced=%d docs=%d", n, c.replaced, len(c.docs))
	}
	if f.lastDir != "sample_docs" || f.lastTen != "demo" {
		t.Errorf("folder read with (%q, %q)", f.lastDir, f.lastTen)
	}
}

func TestRestore(t *testing.T) {
	now := time.Now()
	c := &mockCorpus{}
	a := &mockArchive{list: []upload.Upload{
		{ID: "x_a.md", Filename: "a.md", Tenant: "demo", Data: []byte("alpha"), ReceivedAt: now},
		{ID: "y_b.bin", Filename: "b.bin", Tenant: "acme", Data: []byte{0xff}, ReceivedAt: now},
	}}
	svc := New(c, &mockFolder{}, a, Samples{}, nil)

	n, err := svc.Restore(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || len(c.docs) != 2 {
		t.Fatalf("restored %d, corpus has %d", n, len(c.docs))
	}
	if !c.docs[1].Content().IsUnparsed() {
		t.Error("binary upload should restore as unparsed")
	}
}

func TestRestore_NoArchive(t *testing.T) {
	svc := New(&mockCorpus{}, &mockFolder{}, nil, Samples{}, nil)
	n, err := svc.Restore(context.Background())
	if err != nil || n != 0 {
		t.Errorf("Restore() = %d, %v", n, err)
	}
}

func TestRestore_ListError(t *testing.T) {
	svc := New(&mockCorpus{}, &mockFolder{}, &mockArchive{listErr: domain.ErrArchiveUnavailable}, Samples{}, nil)
	if _, err := svc.Restore(context.Background()); !errors.Is(err, domain.ErrArchiveUnavailable) {
		t.Fatalf("expected ErrArchiveUnavailable, got %v", err)
	}
}

func TestResetAndStats(t *testing.T) {
	c := &mockCorpus{docs: folderDocs("a.md", "b.md")}
	svc := New(c, &mockFolder{}, nil, Samples{}, nil)

	if got := svc.Stats().Documents; got != 2 {
		t.Errorf("Stats().Documents = %d, want 2", got)
	}
	svc.Reset(context.Background())
	if got := svc.Stats().Documents; got != 0 {
		t.Errorf("after reset Documents = %d, want 0", got)
	}
}

func TestReset_PurgesArchive(t *testing.T) {
	c := &mockCorpus{}
	a := &mockArchive{}
	svc := New(c, &mockFolder{}, a, Samples{}, nil)

	if _, err := svc.Upload(context.Background(), "demo", "a.md", []byte("alpha")); err != nil {
		t.Fatal(err)
	}
	svc.Reset(context.Background())
	if a.purged != 1 || len(a.saved) != 0 {
		t.Errorf("purged = %d, saved = %d", a.purged, len(a.saved))
	}

	n, err := svc.Restore(context.Background())
	if err != nil || n != 0 || len(c.docs) != 0 {
		t.Errorf("Restore() after reset = %d, %v, docs %d", n, err, len(c.docs))
	}
}

func TestReset_ArchiveFailureStillResetsCorpus(t *testing.T) {
	c := &mockCorpus{docs: folderDocs("a.md")}
	svc := New(c, &mockFolder{}, &mockArchive{purgeErr: domain.ErrArchiveUnavailable}, Samples{}, nil)

	svc.Reset(context.Background())
	if len(c.docs) != 0 {
		t.Errorf("corpus has %d documents after reset", len(c.docs))
	}
}

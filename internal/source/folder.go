package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kailas-cloud/tenantdex/internal/domain"
	domdoc "github.com/kailas-cloud/tenantdex/internal/domain/document"
)

// DefaultGlob selects markdown files.
const DefaultGlob = "*.md"

// Folder reads documents from the files of a directory matching a glob.
// Each file becomes one document whose id and title are the file name.
type Folder struct {
	glob string
}

// NewFolder creates a folder reader. An empty glob selects DefaultGlob.
func NewFolder(glob string) (*Folder, error) {
	if glob == "" {
		glob = DefaultGlob
	}
	if _, err := filepath.Match(glob, ""); err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", glob, err)
	}
	return &Folder{glob: glob}, nil
}

// Glob returns the file name pattern.
func (f *Folder) Glob() string { return f.glob }

// Matches reports whether a file name is picked up by the reader.
func (f *Folder) Matches(name string) bool {
	ok, _ := filepath.Match(f.glob, filepath.Base(name))
	return ok
}

// Read returns the documents of dir in file name order.
// A missing directory yields no documents.
func (f *Folder) Read(ctx context.Context, dir, tenant string) ([]domdoc.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir %s: %w: %w", dir, domain.ErrSourceUnavailable, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var docs []domdoc.Document
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !f.Matches(e.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w: %w", e.Name(), domain.ErrSourceUnavailable, err)
		}
		doc, err := domdoc.New(e.Name(), e.Name(), tenant, domdoc.Decode(data))
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", e.Name(), err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

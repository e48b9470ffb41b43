package tenantdex

import (
	"context"
	"fmt"
	"strings"
	"time"

	domdoc "github.com/kailas-cloud/tenantdex/internal/domain/document"
	"github.com/kailas-cloud/tenantdex/internal/domain/search/request"
	"github.com/kailas-cloud/tenantdex/internal/domain/search/result"
	"github.com/kailas-cloud/tenantdex/internal/index"
	"github.com/kailas-cloud/tenantdex/internal/source"
	searchuc "github.com/kailas-cloud/tenantdex/internal/usecase/search"
)

// Internal interfaces for substitution in tests.
type corpus interface {
	Load(docs []domdoc.Document) error
	Reset()
	Query(text, tenant string, topK int) []result.Result
	Stats() index.Stats
}

type folderReader interface {
	Read(ctx context.Context, dir, tenant string) ([]domdoc.Document, error)
}

// Client is the tenantdex SDK entry point. It is safe for concurrent use.
type Client struct {
	corpus      corpus
	folder      folderReader
	searchSvc   *searchuc.Service
	defaultTopK int
	obs         *observer
}

// New creates a Client with an empty corpus.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		maxFeatures:    index.DefaultMaxFeatures,
		minTokenLength: 1,
		stopWords:      index.StopWordsEnglish,
		defaultTopK:    request.DefaultTopK,
		folderGlob:     source.DefaultGlob,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	c, err := index.NewCorpus(index.Config{
		MaxFeatures:    cfg.maxFeatures,
		MinTokenLength: cfg.minTokenLength,
		StopWords:      cfg.stopWords,
		DefaultTopK:    cfg.defaultTopK,
		MaxDocuments:   cfg.maxDocuments,
	})
	if err != nil {
		return nil, fmt.Errorf("tenantdex: %w", err)
	}
	folder, err := source.NewFolder(cfg.folderGlob)
	if err != nil {
		return nil, fmt.Errorf("tenantdex: %w", err)
	}
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(c, folder, cfg, obs), nil
}

func wireClient(c corpus, folder folderReader, cfg *clientConfig, obs *observer) *Client {
	topK := cfg.defaultTopK
	if topK <= 0 {
		topK = request.DefaultTopK
	}
	return &Client{
		corpus:      c,
		folder:      folder,
		searchSvc:   searchuc.New(c, nil),
		defaultTopK: topK,
		obs:         obs,
	}
}

// Load validates docs and adds them to the corpus in a single rebuild.
// An invalid document rejects the whole call and leaves the corpus unchanged.
func (c *Client) Load(ctx context.Context, docs []Document) (err error) {
	ev := opEvent{op: opLoad, start: time.Now()}
	defer func() {
		ev.err = err
		c.obs.observe(ctx, ev)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	domDocs := make([]domdoc.Document, len(docs))
	for i, d := range docs {
		domDocs[i], err = domdoc.New(d.ID, d.Title, d.Tenant, domdoc.Text(d.Text))
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
	if err = c.corpus.Load(domDocs); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	ev.documents = len(domDocs)
	return nil
}

// Add adds a single document.
func (c *Client) Add(ctx context.Context, doc Document) error {
	return c.Load(ctx, []Document{doc})
}

// LoadFolder adds every matching file of dir, tagged with tenant.
// A missing directory loads nothing.
func (c *Client) LoadFolder(ctx context.Context, dir, tenant string) (n int, err error) {
	start := time.Now()
	defer func() {
		c.obs.observe(ctx, opEvent{op: opLoadFolder, tenant: tenant, documents: n, start: start, err: err})
	}()

	docs, err := c.folder.Read(ctx, dir, tenant)
	if err != nil {
		return 0, fmt.Errorf("read folder: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	if err = c.corpus.Load(docs); err != nil {
		return 0, fmt.Errorf("load: %w", err)
	}
	return len(docs), nil
}

// Reset empties the corpus.
func (c *Client) Reset() {
	start := time.Now()
	c.corpus.Reset()
	c.obs.observe(context.Background(), opEvent{op: opReset, start: start})
}

// Query ranks the tenant's documents against question.
// topK <= 0 uses the configured default. An empty question returns no results.
func (c *Client) Query(ctx context.Context, question, tenant string, topK int) (out []Result, err error) {
	start := time.Now()
	defer func() {
		c.obs.observe(ctx, opEvent{op: opQuery, tenant: tenant, documents: len(out), start: start, err: err})
	}()

	if topK <= 0 {
		topK = c.defaultTopK
	}
	req, err := request.New(question, tenant, topK, request.MaxTopK)
	if err != nil {
		return nil, err
	}
	results, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, err
	}
	out = make([]Result, len(results))
	for i := range results {
		out[i] = Result{
			ID:      results[i].DocumentID(),
			Title:   results[i].Title(),
			Snippet: results[i].Snippet(),
			Score:   results[i].Score(),
		}
	}
	return out, nil
}

// Stats describes the current corpus.
func (c *Client) Stats() Stats {
	st := c.corpus.Stats()
	return Stats{
		Documents:      st.Documents,
		Tenants:        st.Tenants,
		VocabularySize: st.VocabularySize,
		BuiltAt:        st.BuiltAt,
	}
}

// Answer joins "title: snippet" of each result with blank lines,
// or reports that nothing matched.
func Answer(results []Result) string {
	if len(results) == 0 {
		return searchuc.NoResultsAnswer
	}
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.Title + ": " + r.Snippet
	}
	return strings.Join(parts, "\n\n")
}

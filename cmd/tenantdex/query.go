package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tenantdex/internal/domain/search/request"
	"github.com/kailas-cloud/tenantdex/internal/index"
	"github.com/kailas-cloud/tenantdex/internal/source"
	ingestuc "github.com/kailas-cloud/tenantdex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/tenantdex/internal/usecase/search"
)

type queryOptions struct {
	dir         string
	glob        string
	tenant      string
	topK        int
	maxFeatures int
	stopWords   string
	asJSON      bool
}

type queryHit struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

func newQueryCmd() *cobra.Command {
	opts := queryOptions{}
	cmd := &cobra.Command{
		Use:   "query [question]",
		Short: "Index a document folder and answer one question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, strings.Join(args, " "))
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.dir, "dir", "sample_docs", "folder to index")
	f.StringVar(&opts.glob, "glob", source.DefaultGlob, "file name pattern")
	f.StringVar(&opts.tenant, "tenant", request.DefaultTenant, "tenant to tag and query")
	f.IntVar(&opts.topK, "top-k", request.DefaultTopK, "maximum number of sources")
	f.IntVar(&opts.maxFeatures, "max-features", index.DefaultMaxFeatures, "vocabulary cap (0 = unbounded)")
	f.StringVar(&opts.stopWords, "stop-words", index.StopWordsEnglish, "stop word list: english or none")
	f.BoolVar(&opts.asJSON, "json", false, "print sources as JSON")
	return cmd
}

func runQuery(cmd *cobra.Command, opts queryOptions, question string) error {
	ctx := cmd.Context()

	cfg := index.DefaultConfig()
	cfg.MaxFeatures = opts.maxFeatures
	cfg.StopWords = opts.stopWords
	corpus, err := index.NewCorpus(cfg)
	if err != nil {
		return err
	}
	folder, err := source.NewFolder(opts.glob)
	if err != nil {
		return err
	}

	ingest := ingestuc.New(corpus, folder, nil, ingestuc.Samples{}, zap.NewNop())
	n, err := ingest.LoadFolder(ctx, opts.dir, opts.tenant)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no documents matching %q in %s", opts.glob, opts.dir)
	}

	req, err := request.New(question, opts.tenant, opts.topK, request.MaxTopK)
	if err != nil {
		return err
	}
	results, err := searchuc.New(corpus, nil).Search(ctx, &req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !opts.asJSON {
		_, err = fmt.Fprintln(out, searchuc.Answer(results))
		return err
	}
	hits := make([]queryHit, len(results))
	for i := range results {
		hits[i] = queryHit{
			ID:      results[i].DocumentID(),
			Title:   results[i].Title(),
			Snippet: results[i].Snippet(),
			Score:   results[i].Score(),
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(hits)
}

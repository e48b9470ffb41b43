package result

// Result is a single ranked search hit.
type Result struct {
	documentID string
	title      string
	snippet    string
	score      float64
}

// New creates a search result.
func New(documentID, title, snippet string, score float64) Result {
	return Result{documentID: documentID, title: title, snippet: snippet, score: score}
}

// DocumentID returns the matched document identifier.
func (r *Result) DocumentID() string { return r.documentID }

// Title returns the matched document title.
func (r *Result) Title() string { return r.title }

// Snippet returns the extracted excerpt.
func (r *Result) Snippet() string { return r.snippet }

// Score returns the cosine similarity in [0, 1].
func (r *Result) Score() float64 { return r.score }

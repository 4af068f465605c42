// Package lyra is an in-memory, typo-tolerant full-text search engine over
// a user-declared document schema. Callers declare a nested schema of
// text/number/boolean leaves, insert documents conforming to it, and issue
// search queries combining a free-text term with structured filters over
// boolean and numeric fields.
package lyra

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/DanieleFedeli/lyra/internal/docstore"
	"github.com/DanieleFedeli/lyra/internal/lang"
	"github.com/DanieleFedeli/lyra/internal/query"
	"github.com/DanieleFedeli/lyra/internal/schema"
	"github.com/DanieleFedeli/lyra/internal/tokenizer"
	"github.com/DanieleFedeli/lyra/internal/writequeue"
	apperrors "github.com/DanieleFedeli/lyra/pkg/errors"
	"github.com/DanieleFedeli/lyra/pkg/metrics"
	"github.com/DanieleFedeli/lyra/pkg/tracing"
)

// Config configures a new Engine, paralleling spec's `create(configuration)`
// options: a required schema, a default language, an edge toggle, and a
// pluggable tokenizer.
type Config struct {
	// Schema declares the document shape: a nested map whose leaf values
	// are "text", "number", or "boolean" and whose non-leaf values are
	// themselves nested maps. Required.
	Schema map[string]any

	// DefaultLanguage is used whenever a caller does not override the
	// language for a particular Insert/Search call. Defaults to english.
	DefaultLanguage string

	// Edge is recorded on the engine as given. No indexing or search
	// behavior depends on it.
	Edge bool

	// WriteQueueCapacity bounds how many pending writer-lane jobs may be
	// queued before Insert/Delete block on submission. Defaults to 64.
	WriteQueueCapacity int

	// Tokenizer overrides the default analyzer. Defaults to
	// tokenizer.NewDefault().
	Tokenizer tokenizer.Tokenizer

	// Logger overrides the engine's structured logger. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// Metrics overrides the engine's Prometheus collectors. Defaults to a
	// process-wide metrics.Metrics, registered once on first use and shared
	// by every engine created without an explicit Metrics.
	Metrics *metrics.Metrics
}

// defaultMetrics registers the shared collectors on first call only, since
// the global Prometheus registry rejects a second registration.
var defaultMetrics = sync.OnceValue(metrics.New)

// Engine is a constructed, ready-to-use search engine instance.
type Engine struct {
	schema  schema.Schema
	indices *schema.Indices
	store   *docstore.Store
	queue   *writequeue.Queue
	plan    *query.Plan
	tok     tokenizer.Tokenizer

	defaultLanguage lang.Language
	edge            bool

	logger  *slog.Logger
	metrics *metrics.Metrics

	cancel context.CancelFunc
}

// InsertResult is returned by Insert.
type InsertResult struct {
	ID string
}

// SearchParams is one search request.
type SearchParams struct {
	Term       string
	Properties []string
	Limit      int
	Offset     int
	Exact      bool
	Tolerance  int
	Where      map[string]any
}

// SearchResult is what Search returns: a de-duplicated, paginated set of
// matching documents in insertion-observed order, not ranked by relevance.
type SearchResult struct {
	Count   int
	Hits    []map[string]any
	Elapsed string
}

// Stats is a point-in-time snapshot of engine size and health, supplementing
// the core contract for operational visibility.
type Stats struct {
	DocumentCount   int
	WriteQueueDepth int
	TextPaths       []string
	NumericPaths    []string
	BooleanPaths    []string
}

// Create builds a new Engine from cfg. The schema is fixed for the
// lifetime of the engine; there is no schema evolution after construction.
func Create(cfg Config) (*Engine, error) {
	if cfg.Schema == nil {
		return nil, apperrors.InvalidSchemaType("nil")
	}

	s, err := schema.Parse(cfg.Schema)
	if err != nil {
		return nil, err
	}

	defaultLanguage, err := lang.Parse(cfg.DefaultLanguage)
	if err != nil {
		return nil, err
	}

	tok := cfg.Tokenizer
	if tok == nil {
		tok = tokenizer.NewDefault()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := cfg.Metrics
	if m == nil {
		m = defaultMetrics()
	}
	capacity := cfg.WriteQueueCapacity
	if capacity <= 0 {
		capacity = 64
	}

	indices := schema.BuildIndices(s)
	store := docstore.New()
	ctx, cancel := context.WithCancel(context.Background())
	queue := writequeue.New(ctx, capacity, logger.With("component", "engine"))

	return &Engine{
		schema:          s,
		indices:         indices,
		store:           store,
		queue:           queue,
		plan:            query.New(s, indices, tok),
		tok:             tok,
		defaultLanguage: defaultLanguage,
		edge:            cfg.Edge,
		logger:          logger.With("component", "engine"),
		metrics:         m,
		cancel:          cancel,
	}, nil
}

// Close stops the engine's writer lane. It does not block on any
// in-flight job; callers that need read-your-writes should let Insert and
// Delete calls return first.
func (e *Engine) Close() {
	e.cancel()
}

// Count returns the current number of documents in the engine.
func (e *Engine) Count() int {
	return e.store.Count()
}

// Stats returns a snapshot of engine size for health checks; the demo
// server's /readyz endpoint reports it through its engine check.
func (e *Engine) Stats() Stats {
	textPaths := make([]string, 0, len(e.indices.Text))
	for p := range e.indices.Text {
		textPaths = append(textPaths, p)
	}
	numericPaths := make([]string, 0, len(e.indices.Numeric))
	for p := range e.indices.Numeric {
		numericPaths = append(numericPaths, p)
	}
	booleanPaths := make([]string, 0, len(e.indices.Boolean))
	for p := range e.indices.Boolean {
		booleanPaths = append(booleanPaths, p)
	}
	return Stats{
		DocumentCount:   e.store.Count(),
		WriteQueueDepth: e.queue.Depth(),
		TextPaths:       textPaths,
		NumericPaths:    numericPaths,
		BooleanPaths:    booleanPaths,
	}
}

func (e *Engine) resolveLanguage(override []string) (lang.Language, error) {
	if len(override) == 0 || override[0] == "" {
		return e.defaultLanguage, nil
	}
	return lang.Parse(override[0])
}

// Insert validates doc against the schema, assigns it a fresh id, and
// submits its indexing to the writer lane, blocking until the writer has
// applied it.
func (e *Engine) Insert(doc map[string]any, language ...string) (InsertResult, error) {
	ctx, span := tracing.StartSpan(context.Background(), "lyra.Insert", uuid.New().String())
	defer func() { span.End(); span.Log() }()

	lng, err := e.resolveLanguage(language)
	if err != nil {
		e.metrics.InsertsTotal.WithLabelValues("error").Inc()
		return InsertResult{}, err
	}
	if err := schema.ValidateDocument(doc, e.schema); err != nil {
		e.metrics.InsertsTotal.WithLabelValues("error").Inc()
		return InsertResult{}, err
	}

	id := uuid.New().String()
	span.SetAttr("doc_id", id)

	err = e.queue.Submit(ctx, func() error {
		return e.applyInsert(id, doc, lng)
	})
	if err != nil {
		e.metrics.InsertsTotal.WithLabelValues("error").Inc()
		return InsertResult{}, err
	}

	e.metrics.InsertsTotal.WithLabelValues("ok").Inc()
	e.metrics.DocsIndexed.Set(float64(e.store.Count()))
	e.metrics.WriteQueueDepth.Set(float64(e.queue.Depth()))
	return InsertResult{ID: id}, nil
}

func (e *Engine) applyInsert(id string, doc map[string]any, language lang.Language) error {
	ordinal := e.store.Allocate(id)

	for path, tree := range e.indices.Text {
		value, ok := lookupPath(doc, path)
		if !ok {
			continue
		}
		text, _ := value.(string)
		tokens, err := e.tok.Tokenize(text, language)
		if err != nil {
			return err
		}
		for token := range tokens {
			tree.Insert(token, ordinal)
		}
		e.store.RecordTermFrequency(path, tokens)
	}

	for path, idx := range e.indices.Numeric {
		value, ok := lookupPath(doc, path)
		if !ok {
			continue
		}
		if n, ok := asFloat64(value); ok {
			idx.Insert(n, ordinal)
		}
	}

	for path, idx := range e.indices.Boolean {
		value, ok := lookupPath(doc, path)
		if !ok {
			continue
		}
		if b, ok := value.(bool); ok {
			idx.Insert(b, ordinal)
		}
	}

	e.store.Put(ordinal, doc)
	return nil
}

// Delete removes id from every index and the document table. It is fatal
// (IndexRemovalFailure) if the document table believes id exists but none
// of its schema-declared indices actually contained it — a structural
// corruption the writer lane cannot recover from on its own.
func (e *Engine) Delete(id string) (bool, error) {
	ctx, span := tracing.StartSpan(context.Background(), "lyra.Delete", uuid.New().String())
	defer func() { span.End(); span.Log() }()
	span.SetAttr("doc_id", id)

	ordinal, ok := e.store.OrdinalFor(id)
	if !ok {
		e.metrics.DeletesTotal.WithLabelValues("not_found").Inc()
		return false, apperrors.DocIdDoesNotExist(id)
	}

	err := e.queue.Submit(ctx, func() error {
		return e.applyDelete(ordinal, id)
	})
	if err != nil {
		e.metrics.DeletesTotal.WithLabelValues("error").Inc()
		return false, err
	}

	e.metrics.DeletesTotal.WithLabelValues("ok").Inc()
	e.metrics.DocsIndexed.Set(float64(e.store.Count()))
	e.metrics.WriteQueueDepth.Set(float64(e.queue.Depth()))
	return true, nil
}

func (e *Engine) applyDelete(ordinal uint32, id string) error {
	doc, _ := e.store.Get(ordinal)
	removedAnywhere := false
	attemptedAny := false

	for path, tree := range e.indices.Text {
		value, ok := lookupPath(doc, path)
		if !ok {
			continue
		}
		text, _ := value.(string)
		tokens, err := e.tok.Tokenize(text, e.defaultLanguage)
		if err != nil {
			return err
		}
		for token := range tokens {
			attemptedAny = true
			if tree.Remove(token, ordinal) {
				removedAnywhere = true
			}
		}
		e.store.ForgetTermFrequency(path, tokens)
	}

	for path, idx := range e.indices.Numeric {
		value, ok := lookupPath(doc, path)
		if !ok {
			continue
		}
		if n, ok := asFloat64(value); ok {
			attemptedAny = true
			if idx.Remove(n, ordinal) {
				removedAnywhere = true
			}
		}
	}

	for path, idx := range e.indices.Boolean {
		value, ok := lookupPath(doc, path)
		if !ok {
			continue
		}
		if b, ok := value.(bool); ok {
			attemptedAny = true
			if idx.Remove(b, ordinal) {
				removedAnywhere = true
			}
		}
	}

	if attemptedAny && !removedAnywhere {
		return apperrors.IndexRemovalFailure("document id known to the document table was not present in any of its schema-declared indices")
	}

	e.store.Delete(ordinal, id)
	return nil
}

// Search tokenizes term, composes hits from the text index with the
// structured `where` filter set via set algebra, and returns a paginated,
// de-duplicated result in insertion-observed order.
func (e *Engine) Search(params SearchParams, language ...string) (SearchResult, error) {
	_, span := tracing.StartSpan(context.Background(), "lyra.Search", uuid.New().String())
	defer func() { span.End(); span.Log() }()
	span.SetAttr("term", params.Term)

	lng, err := e.resolveLanguage(language)
	if err != nil {
		e.metrics.SearchQueriesTotal.WithLabelValues("error").Inc()
		return SearchResult{}, err
	}

	result, err := e.plan.Run(query.Params{
		Term:       params.Term,
		Properties: params.Properties,
		Limit:      params.Limit,
		Offset:     params.Offset,
		Exact:      params.Exact,
		Tolerance:  params.Tolerance,
		Where:      params.Where,
	}, lng)
	if err != nil {
		e.metrics.SearchQueriesTotal.WithLabelValues("error").Inc()
		return SearchResult{}, err
	}

	hits := make([]map[string]any, 0, len(result.Hits))
	for _, ordinal := range result.Hits {
		if doc, ok := e.store.Get(ordinal); ok {
			hits = append(hits, doc)
		}
	}

	e.metrics.SearchQueriesTotal.WithLabelValues("ok").Inc()
	e.metrics.SearchLatency.Observe(result.Elapsed.Seconds())
	e.metrics.SearchResultsCount.Observe(float64(len(hits)))

	return SearchResult{
		Count:   result.Count,
		Hits:    hits,
		Elapsed: formatElapsed(result.Elapsed),
	}, nil
}

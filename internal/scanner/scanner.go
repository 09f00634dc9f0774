// Package scanner implements the collection traversal that drives
// schema inference: bounded document sampling per collection, field
// observation with one level of nested-map flattening, and optional
// recursive descent into sub-collections.
package scanner

import (
	"context"
	"fmt"

	"github.com/dbsmedya/docscan/internal/logger"
	"github.com/dbsmedya/docscan/internal/schema"
	"github.com/dbsmedya/docscan/internal/store"
	"github.com/dbsmedya/docscan/internal/wire"
)

// Source is the document store surface the scanner consumes.
type Source interface {
	// ListCollectionIDs returns the immediate sub-collection
	// identifiers under parentPath; empty parentPath lists roots.
	ListCollectionIDs(ctx context.Context, parentPath string) ([]string, error)
	// ListDocuments returns up to pageSize documents from the
	// collection, single page only.
	ListDocuments(ctx context.Context, collectionPath string, pageSize int) ([]store.Document, error)
}

// Options configures one scan run.
type Options struct {
	Target     string // target identity recorded in the snapshot
	SampleSize int    // documents fetched per collection, upper bound
	Collection string // optional single starting path; empty scans all roots
	Recurse    bool   // descend into sub-collections of sampled documents
	MaxDepth   int    // recursion budget; 0 means recursion never fires
}

// Scanner walks collections depth-first and accumulates a snapshot.
type Scanner struct {
	source Source
	log    *logger.Logger
	opts   Options
}

// session carries the per-run mutable state so a Scanner can be
// reused for independent runs.
type session struct {
	snapshot *schema.Snapshot
	visited  map[string]struct{}
}

// New creates a scanner over the given document source.
func New(source Source, log *logger.Logger, opts Options) (*Scanner, error) {
	if source == nil {
		return nil, fmt.Errorf("source is nil")
	}
	if opts.SampleSize < 1 {
		return nil, fmt.Errorf("sample size must be at least 1, got %d", opts.SampleSize)
	}
	if log == nil {
		log = logger.NewDefault()
	}

	return &Scanner{
		source: source,
		log:    log,
		opts:   opts,
	}, nil
}

// Run performs one full traversal and returns the completed snapshot.
// Any fetch failure aborts the run; there is no partial-result
// recovery.
func (s *Scanner) Run(ctx context.Context) (*schema.Snapshot, error) {
	sess := &session{
		snapshot: schema.NewSnapshot(s.opts.Target),
		visited:  make(map[string]struct{}),
	}

	if s.opts.Collection != "" {
		if err := s.scanCollection(ctx, sess, s.opts.Collection, 0); err != nil {
			return nil, err
		}
		return sess.snapshot, nil
	}

	roots, err := s.source.ListCollectionIDs(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to discover root collections: %w", err)
	}
	s.log.Infow("discovered root collections", "count", len(roots))

	for _, id := range roots {
		if err := s.scanCollection(ctx, sess, id, 0); err != nil {
			return nil, err
		}
	}

	return sess.snapshot, nil
}

// scanCollection samples one collection path, observes its fields,
// and recurses into sub-collections while the depth budget allows.
// Already-visited paths are skipped entirely; a second discovery
// route to the same full path contributes no additional samples.
func (s *Scanner) scanCollection(ctx context.Context, sess *session, path string, depth int) error {
	if _, seen := sess.visited[path]; seen {
		s.log.Debugw("skipping already visited collection", "collection", path)
		return nil
	}
	sess.visited[path] = struct{}{}

	docs, err := s.source.ListDocuments(ctx, path, s.opts.SampleSize)
	if err != nil {
		return fmt.Errorf("failed to sample collection %q: %w", path, err)
	}

	report := schema.NewCollectionReport()
	for _, doc := range docs {
		s.observeDocument(report, doc)
	}
	report.TotalSampled = len(docs)
	sess.snapshot.Add(path, report)

	s.log.Infow("collection sampled",
		"collection", path,
		"depth", depth,
		"documents", len(docs),
		"fields", len(report.Fields),
	)

	if !s.opts.Recurse || depth >= s.opts.MaxDepth {
		return nil
	}

	for _, doc := range docs {
		parent := path + "/" + doc.ID()
		childIDs, err := s.source.ListCollectionIDs(ctx, parent)
		if err != nil {
			return fmt.Errorf("failed to discover sub-collections of %q: %w", parent, err)
		}
		for _, id := range childIDs {
			if err := s.scanCollection(ctx, sess, parent+"/"+id, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

// observeDocument records every top-level field of the document plus
// exactly one level of flattened children for map-valued fields.
// Grandchildren stay inside their parent map's samples and are not
// given dotted paths of their own.
func (s *Scanner) observeDocument(report *schema.CollectionReport, doc store.Document) {
	for name, wv := range doc.Fields {
		value := wire.Decode(&wv)
		report.Observe(name, value)

		if entries, ok := value.(map[string]any); ok {
			for childName, childValue := range entries {
				report.Observe(name+"."+childName, childValue)
			}
		}
	}
}

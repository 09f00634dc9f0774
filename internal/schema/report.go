// Package schema accumulates per-field observations into collection
// reports and assembles them into the final snapshot artifact.
package schema

import (
	"github.com/dbsmedya/docscan/internal/wire"
)

// maxSamples caps the number of literal values retained per field.
const maxSamples = 3

// FieldObservation summarizes everything seen for one field path
// within a collection: how often it appeared, which value categories
// it held, and a few literal examples.
type FieldObservation struct {
	Count   int      `json:"count"`
	Types   []string `json:"types"`
	Samples []any    `json:"samples"`
}

// CollectionReport holds the inferred shape of a single collection.
// TotalSampled is the number of documents actually fetched, which may
// be below the configured sample size for small collections.
type CollectionReport struct {
	Fields       map[string]*FieldObservation `json:"fields"`
	TotalSampled int                          `json:"totalSampled"`
}

// NewCollectionReport creates an empty report for one collection.
func NewCollectionReport() *CollectionReport {
	return &CollectionReport{
		Fields: make(map[string]*FieldObservation),
	}
}

// Observe records one canonical value for the given field path.
// The count always increments; the value's category is added to the
// type set if new; the literal value is kept while under the sample
// cap.
func (r *CollectionReport) Observe(fieldPath string, value any) {
	obs, ok := r.Fields[fieldPath]
	if !ok {
		obs = &FieldObservation{
			Types:   []string{},
			Samples: []any{},
		}
		r.Fields[fieldPath] = obs
	}

	obs.Count++

	kind := string(wire.KindOf(value))
	if !containsType(obs.Types, kind) {
		obs.Types = append(obs.Types, kind)
	}

	if len(obs.Samples) < maxSamples {
		obs.Samples = append(obs.Samples, value)
	}
}

// containsType reports whether the type set already holds the given
// category. The set stays tiny (six categories at most), so a linear
// scan beats a map here.
func containsType(types []string, kind string) bool {
	for _, t := range types {
		if t == kind {
			return true
		}
	}
	return false
}

package browser

import (
	"fmt"
	"strings"
)

// Filter turns filter text into the active subset of the catalog by
// re-querying it with a trailing wildcard.
type Filter struct {
	catalog    Catalog
	extensions []string
	applied    string

	// known limits results to the names loaded at construction; nil allows all.
	known map[string]struct{}
}

// NewFilter starts with the empty query applied, matching the full catalog.
func NewFilter(catalog Catalog, extensions []string) *Filter {
	return &Filter{catalog: catalog, extensions: extensions}
}

// Restrict limits every later result to names. Anything the catalog
// reports outside that set is dropped.
func (f *Filter) Restrict(names []string) {
	f.known = make(map[string]struct{}, len(names))
	for _, name := range names {
		f.known[name] = struct{}{}
	}
}

// Text is the last applied query.
func (f *Filter) Text() string {
	return f.applied
}

func normalizeQuery(q string) string {
	return strings.TrimSpace(q)
}

// Apply returns the names matching query. changed is false, and names nil,
// when the normalized query equals the one already applied. A query error
// still counts as a change so the caller can show an empty list.
func (f *Filter) Apply(query string) (names []string, changed bool, err error) {
	text := normalizeQuery(query)
	if text == f.applied {
		return nil, false, nil
	}
	f.applied = text

	names, err = f.Query(text)
	return names, true, err
}

// Query returns the supported names matching query plus a trailing
// wildcard, without touching the applied text.
func (f *Filter) Query(query string) ([]string, error) {
	if f.catalog == nil {
		return nil, ErrNoCatalog
	}
	text := normalizeQuery(query)
	matched, err := f.catalog.Query(text + "*")
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", text, err)
	}
	names := supportedNames(matched, f.extensions)
	if f.known == nil {
		return names, nil
	}
	kept := names[:0]
	for _, name := range names {
		if _, ok := f.known[name]; ok {
			kept = append(kept, name)
		}
	}
	return kept, nil
}

// Package style indexes document style table, assigns per component classes
// and compiles styles into stylesheet rules.
package style

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"docrender/document"
)

// ClassPrefix is prepended to every sanitized style id.
const ClassPrefix = "s-"

var unsafeClassChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Sanitize maps every character outside [A-Za-z0-9_-] to underscore. Ids
// which differ only in such characters produce the same token.
func Sanitize(id string) string {
	return unsafeClassChars.ReplaceAllString(id, "_")
}

// ClassName returns style specific class for the id without checking the
// index.
func ClassName(id string) string {
	return ClassPrefix + Sanitize(id)
}

// Index is immutable lookup table from style id to style entry. It is built
// once per render call.
type Index struct {
	entries map[string]document.StyleEntry
	order   []string
	log     *zap.Logger
}

// NewIndex builds index from style table. Entries without id are discarded,
// the last entry for duplicate id wins but keeps position of the first one.
func NewIndex(styles []document.StyleEntry, log *zap.Logger) *Index {
	if log == nil {
		log = zap.NewNop()
	}
	idx := &Index{
		entries: make(map[string]document.StyleEntry, len(styles)),
		log:     log.Named("style"),
	}
	for _, s := range styles {
		id := s.StyleID.Trimmed()
		if id == "" {
			idx.log.Debug("Style entry without id discarded")
			continue
		}
		if _, ok := idx.entries[id]; !ok {
			idx.order = append(idx.order, id)
		} else {
			idx.log.Debug("Duplicate style id, last entry wins", zap.String("id", id))
		}
		idx.entries[id] = s
	}
	return idx
}

// Len returns number of indexed styles.
func (idx *Index) Len() int {
	return len(idx.order)
}

// IDs returns indexed style ids in first appearance order.
func (idx *Index) IDs() []string {
	return append([]string(nil), idx.order...)
}

// Lookup returns style entry by id. Unknown and empty ids are not found.
func (idx *Index) Lookup(id string) (document.StyleEntry, bool) {
	if id == "" {
		return document.StyleEntry{}, false
	}
	s, ok := idx.entries[id]
	return s, ok
}

// ClassFor returns class attribute value: base classes followed by style
// class when id is indexed.
func (idx *Index) ClassFor(id string, base ...string) string {
	classes := make([]string, 0, len(base)+1)
	for _, b := range base {
		if b = strings.TrimSpace(b); b != "" {
			classes = append(classes, b)
		}
	}
	if _, ok := idx.Lookup(id); ok {
		classes = append(classes, ClassName(id))
	} else if id != "" {
		idx.log.Debug("Style not found, class omitted", zap.String("id", id))
	}
	return strings.Join(classes, " ")
}

// Package binding extracts typed placeholder references from template
// strings. Grammar is `{{<kind>:<name>}}` where kind is one of col, img or
// table and name is any non empty run of characters except '}'.
package binding

import "regexp"

// Kind of placeholder.
type Kind string

const (
	KindColumn Kind = "col"
	KindImage  Kind = "img"
	KindTable  Kind = "table"
)

var (
	anyPlaceholder = regexp.MustCompile(`\{\{(col|img|table):([^}]+)\}\}`)
	patterns       = map[Kind]*regexp.Regexp{
		KindColumn: regexp.MustCompile(`\{\{col:([^}]+)\}\}`),
		KindImage:  regexp.MustCompile(`\{\{img:([^}]+)\}\}`),
		KindTable:  regexp.MustCompile(`\{\{table:([^}]+)\}\}`),
	}
)

// Extract returns name referenced by the first placeholder of requested kind,
// additional occurrences are ignored.
func Extract(tpl string, kind Kind) (string, bool) {
	re, ok := patterns[kind]
	if !ok {
		return "", false
	}
	m := re.FindStringSubmatch(tpl)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Names returns all names referenced by placeholders of requested kind in
// order of appearance.
func Names(tpl string, kind Kind) []string {
	re, ok := patterns[kind]
	if !ok {
		return nil
	}
	var names []string
	for _, m := range re.FindAllStringSubmatch(tpl, -1) {
		names = append(names, m[1])
	}
	return names
}

// Text substitutes every `col` placeholder with resolved value keeping
// surrounding literal text. Placeholders of other kinds do not belong to text
// and resolve to nothing.
func Text(tpl string, resolve func(name string) string) string {
	if tpl == "" {
		return ""
	}
	return anyPlaceholder.ReplaceAllStringFunc(tpl, func(match string) string {
		m := anyPlaceholder.FindStringSubmatch(match)
		if Kind(m[1]) != KindColumn {
			return ""
		}
		return resolve(m[2])
	})
}

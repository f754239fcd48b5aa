package css

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Declaration is a single property of a rule. Value is kept exactly as
// written (whitespace normalized).
type Declaration struct {
	Name  string
	Value string
}

// Rule represents a single CSS rule. Declarations are kept in source order,
// later declarations of the same property win in the cascade.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// NewRule returns an empty rule for the given raw selector.
func NewRule(selector string) *Rule {
	return &Rule{Selector: selector}
}

// Set stores raw as the value of property name. Property already present is
// updated in place, new one is appended. Empty values are ignored.
func (r *Rule) Set(name, raw string) *Rule {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return r
	}
	for i := range r.Declarations {
		if r.Declarations[i].Name == name {
			r.Declarations[i].Value = raw
			return r
		}
	}
	r.Declarations = append(r.Declarations, Declaration{Name: name, Value: raw})
	return r
}

// IsEmpty reports whether the rule carries no declarations.
func (r Rule) IsEmpty() bool {
	return len(r.Declarations) == 0
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock or Import is non-nil. @font-face is kept as
// a rule with "@font-face" selector.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
	Import     *string
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query string
	Rules []Rule
}

// Stylesheet represents a parsed or generated CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for skipped or unsupported constructs
}

// AddRule appends a rule. Rules without declarations are dropped.
func (s *Stylesheet) AddRule(r *Rule) {
	if r == nil || r.IsEmpty() {
		return
	}
	s.Items = append(s.Items, StylesheetItem{Rule: r})
}

// Append adds every item of other after the items already present.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Items = append(s.Items, other.Items...)
	s.Warnings = append(s.Warnings, other.Warnings...)
}

// Clone returns deep copy of the stylesheet so it could be modified without
// affecting the original.
func (s *Stylesheet) Clone() *Stylesheet {
	out := &Stylesheet{
		Items:    make([]StylesheetItem, 0, len(s.Items)),
		Warnings: append([]string(nil), s.Warnings...),
	}
	cloneRule := func(r Rule) Rule {
		r.Declarations = slices.Clone(r.Declarations)
		return r
	}
	for _, item := range s.Items {
		var c StylesheetItem
		switch {
		case item.Rule != nil:
			r := cloneRule(*item.Rule)
			c.Rule = &r
		case item.MediaBlock != nil:
			mb := MediaBlock{Query: item.MediaBlock.Query, Rules: make([]Rule, 0, len(item.MediaBlock.Rules))}
			for _, r := range item.MediaBlock.Rules {
				mb.Rules = append(mb.Rules, cloneRule(r))
			}
			c.MediaBlock = &mb
		case item.Import != nil:
			u := *item.Import
			c.Import = &u
		}
		out.Items = append(out.Items, c)
	}
	return out
}

// urlRewritePattern matches url() references in CSS values for RewriteURLs.
// Handles: url("path"), url('path'), url(path)
var urlRewritePattern = regexp.MustCompile(`url\s*\(\s*(?:["']([^"']*)["']|([^)"]*))\s*\)`)

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Import != nil:
			n, err = fmt.Fprintf(w, "@import url(\"%s\");\n", cssEscapeDoubleQuoted(*item.Import))
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err = fmt.Fprintf(w, "%s  %s: %s;\n", indent, d.Name, d.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query)
	total += n
	if err != nil {
		return total, err
	}
	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// RewriteURLs walks all URL references in the stylesheet and applies fn to each.
// This covers @import URLs and url() references in declarations, @font-face
// src included.
func (s *Stylesheet) RewriteURLs(fn func(originalURL string) string) {
	for i := range s.Items {
		item := &s.Items[i]

		switch {
		case item.Import != nil:
			newURL := fn(*item.Import)
			item.Import = &newURL

		case item.Rule != nil:
			rewriteURLsInDeclarations(item.Rule.Declarations, fn)

		case item.MediaBlock != nil:
			for j := range item.MediaBlock.Rules {
				rewriteURLsInDeclarations(item.MediaBlock.Rules[j].Declarations, fn)
			}
		}
	}
}

func rewriteURLsInDeclarations(decls []Declaration, fn func(string) string) {
	for i := range decls {
		if strings.Contains(decls[i].Value, "url(") {
			decls[i].Value = rewriteURLsInValue(decls[i].Value, fn)
		}
	}
}

func rewriteURLsInValue(value string, fn func(string) string) string {
	return urlRewritePattern.ReplaceAllStringFunc(value, func(match string) string {
		sub := urlRewritePattern.FindStringSubmatch(match)
		if len(sub) < 3 {
			return match
		}
		// Group 1 is quoted URL, group 2 is unquoted URL
		originalURL := sub[1]
		if originalURL == "" {
			originalURL = sub[2]
		}
		originalURL = strings.TrimSpace(originalURL)
		return fmt.Sprintf("url(\"%s\")", cssEscapeDoubleQuoted(fn(originalURL)))
	})
}

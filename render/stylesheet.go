package render

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"docrender/css"
	"docrender/document"
	"docrender/style"
)

//go:embed base.css
var baseCSS []byte

// parseBase parses fixed base rules. Result is never modified afterwards.
func parseBase(log *zap.Logger) *css.Stylesheet {
	sheet := css.NewParser(log).Parse(baseCSS, "base.css")
	for _, w := range sheet.Warnings {
		log.Debug("Base stylesheet warning", zap.String("warning", w))
	}
	return sheet
}

// normalizePage fills blank page fields from defaults.
func normalizePage(p, def document.PageOptions) document.PageOptions {
	pick := func(v, d string) string {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
		return d
	}
	return document.PageOptions{
		Size:         pick(p.Size, def.Size),
		MarginTop:    pick(p.MarginTop, def.MarginTop),
		MarginRight:  pick(p.MarginRight, def.MarginRight),
		MarginBottom: pick(p.MarginBottom, def.MarginBottom),
		MarginLeft:   pick(p.MarginLeft, def.MarginLeft),
	}
}

// pageRule emits page size and margin directives.
func pageRule(p document.PageOptions) *css.Rule {
	return css.NewRule("@page").
		Set("size", style.Clean(p.Size)).
		Set("margin", style.Clean(strings.Join([]string{p.MarginTop, p.MarginRight, p.MarginBottom, p.MarginLeft}, " ")))
}

// TokenRule compiles design tokens into root scope custom properties in
// natural order of names. Characters able to close the declaration or the
// rule are stripped from names and values.
func TokenRule(tokens map[string]string) *css.Rule {
	names := make([]string, 0, len(tokens))
	for name := range tokens {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))

	rule := css.NewRule(":root")
	for _, name := range names {
		if clean := style.Clean(name); clean != "" {
			rule.Set(clean, style.Clean(tokens[name]))
		}
	}
	return rule
}

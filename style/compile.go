package style

import (
	"strings"

	"docrender/css"
	"docrender/document"
)

// declaration maps one style entry field to stylesheet property.
type declaration struct {
	property string
	value    func(document.StyleEntry) string
}

// Grid parameters (columns, caption_*) and variant are consumed by renderers
// directly and have no stylesheet equivalent.
var declarations = []declaration{
	{"font-family", func(s document.StyleEntry) string { return Value(s.Font) }},
	{"font-size", func(s document.StyleEntry) string { return FontSize(s.Size) }},
	{"font-weight", func(s document.StyleEntry) string { return FontWeight(s.Weight) }},
	{"text-align", func(s document.StyleEntry) string { return Value(s.Align) }},
	{"color", func(s document.StyleEntry) string { return Value(s.Color) }},
	{"line-height", func(s document.StyleEntry) string { return Value(s.LineHeight) }},
	{"background", func(s document.StyleEntry) string { return Value(s.Background) }},
	{"padding", func(s document.StyleEntry) string { return Value(s.Padding) }},
	{"border", func(s document.StyleEntry) string { return Value(s.Border) }},
	{"width", func(s document.StyleEntry) string { return Value(s.Width) }},
	{"max-width", func(s document.StyleEntry) string { return Value(s.MaxWidth) }},
	{"max-height", func(s document.StyleEntry) string { return Value(s.MaxHeight) }},
	{"object-fit", func(s document.StyleEntry) string { return Value(s.ImageFit) }},
	{"gap", func(s document.StyleEntry) string { return Value(s.Gap) }},
}

// Compile produces one rule per indexed style in first appearance order.
// Absent properties are not emitted, styles without any emitted property
// produce no rule.
func (idx *Index) Compile() []*css.Rule {
	rules := make([]*css.Rule, 0, len(idx.order))
	for _, id := range idx.order {
		entry := idx.entries[id]
		rule := css.NewRule("." + ClassName(id))
		for _, d := range declarations {
			rule.Set(d.property, d.value(entry))
		}
		if rule.IsEmpty() {
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

// Stylesheet returns compiled rules as stylesheet.
func (idx *Index) Stylesheet() *css.Stylesheet {
	sheet := &css.Stylesheet{}
	for _, r := range idx.Compile() {
		sheet.AddRule(r)
	}
	return sheet
}

var declarationBreakers = strings.NewReplacer(";", "", "{", "", "}", "")

// Clean removes characters which would terminate declaration or rule.
func Clean(s string) string {
	return strings.TrimSpace(declarationBreakers.Replace(s))
}

// Value returns declarative value as opaque stylesheet value.
func Value(v document.Scalar) string {
	return Clean(v.String())
}

// FontSize emits bare numbers as points, anything else is passed through.
func FontSize(v document.Scalar) string {
	if v.IsNumber() {
		return v.Trimmed() + "pt"
	}
	return Value(v)
}

// FontWeight translates weight keywords into numeric weights.
func FontWeight(v document.Scalar) string {
	switch strings.ToLower(v.Trimmed()) {
	case "bold":
		return "700"
	case "normal":
		return "400"
	}
	return Value(v)
}

package render

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"docrender/binding"
	"docrender/common"
	"docrender/document"
	"docrender/imageref"
	"docrender/style"
)

// call is per render state. It is built from payload at the beginning of
// Render and dropped at the end.
type call struct {
	data     document.Data
	styles   *style.Index
	images   *imageref.Normalizer
	settings *Settings
	log      *zap.Logger
}

// component dispatches over component variants, unknown ones render nothing.
func (c *call) component(comp document.Component) string {
	switch v := comp.(type) {
	case document.Text:
		return c.text(v)
	case document.Image:
		return c.image(v)
	case document.Table:
		return c.table(v)
	case document.KeyValue:
		return c.keyValue(v)
	case document.Unknown:
		c.log.Debug("Skipping component of unknown type", zap.String("type", v.Type))
	}
	return ""
}

// placeholder applies placeholder policy to a component with no value.
func (c *call) placeholder(base document.Common, def string) string {
	if base.Placeholder != common.PlaceholderModeVisible {
		return ""
	}
	text := base.PlaceholderText
	if text == "" {
		text = def
	}
	return `<div class="` + EscapeAttr(c.styles.ClassFor(base.PlaceholderStyleID, "placeholder")) + `">` +
		EscapeHTML(text) + `</div>`
}

func (c *call) text(t document.Text) string {
	val := binding.Text(t.Binding, c.data.Field)
	if strings.TrimSpace(val) == "" {
		return c.placeholder(t.Common, c.settings.Placeholders.Text)
	}
	return `<div class="` + EscapeAttr(c.styles.ClassFor(t.StyleID, "text")) + `">` + EscapeHTML(val) + `</div>`
}

// resolveImage resolves first img placeholder through image normalizer.
func (c *call) resolveImage(tpl string) string {
	name, ok := binding.Extract(tpl, binding.KindImage)
	if !ok {
		return ""
	}
	return c.images.Normalize(c.data.Field(name))
}

func (c *call) image(img document.Image) string {
	src := c.resolveImage(img.Binding)
	if src == "" {
		return c.placeholder(img.Common, c.settings.Placeholders.Image)
	}
	cascade := c.styles.Cascade(img.StyleID)
	return imgTag(c.styles.ClassFor(img.StyleID, "img"), src, inlineStyle(
		"max-width", cascade.String(img.MaxWidth, style.FieldMaxWidth, DefaultImageMaxWidth),
		"max-height", cascade.String(img.MaxHeight, style.FieldMaxHeight, DefaultImageMaxHeight),
		"object-fit", cascade.String(img.Fit, style.FieldImageFit, DefaultImageFit),
	))
}

// rows resolves first table placeholder against named row sequences.
func (c *call) rows(tpl string) [][]string {
	name, ok := binding.Extract(tpl, binding.KindTable)
	if !ok {
		return nil
	}
	return c.data.Rows(name)
}

func (c *call) table(t document.Table) string {
	rows := c.rows(t.Binding)
	if len(rows) == 0 {
		return c.placeholder(t.Common, c.settings.Placeholders.Table)
	}

	// explicit headers make every row a data row
	headers, body := t.Headers, rows
	if len(headers) == 0 {
		headers, body = rows[0], rows[1:]
	}

	var sb strings.Builder
	sb.WriteString(`<table class="` + EscapeAttr(c.styles.ClassFor(t.StyleID, "tbl")) + `"><thead><tr>`)
	for _, h := range headers {
		sb.WriteString("<th>" + EscapeHTML(h) + "</th>")
	}
	sb.WriteString("</tr></thead><tbody>")
	for _, row := range body {
		sb.WriteString("<tr>")
		for i := range max(len(headers), len(row)) {
			sb.WriteString("<td>" + EscapeHTML(cell(row, i)) + "</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}

func (c *call) keyValue(kv document.KeyValue) string {
	type item struct{ label, value string }

	var items []item
	for _, row := range c.rows(kv.Binding) {
		it := item{label: cell(row, kv.LabelCol), value: cell(row, kv.ValueCol)}
		if strings.TrimSpace(it.label) == "" && strings.TrimSpace(it.value) == "" {
			continue
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return c.placeholder(kv.Common, c.settings.Placeholders.KeyValue)
	}

	cascade := c.styles.Cascade(kv.StyleID)
	columns := cascade.Int(kv.Columns, style.FieldColumns, DefaultKVColumns)
	gap := cascade.String(kv.Gap, style.FieldGap, DefaultKVGap)
	variant, err := common.ParseKVVariant(cascade.String(kv.Variant, style.FieldVariant, common.KVVariantBoxed.String()))
	if err != nil {
		c.log.Debug("Unknown key-value variant, using default", zap.Error(err))
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + EscapeAttr(c.styles.ClassFor(kv.StyleID, "kv", "kv-"+variant.String())) + `"`)
	sb.WriteString(` style="` + EscapeAttr(inlineStyle("grid-template-columns", gridColumns(columns), "gap", gap)) + `">`)
	for _, it := range items {
		sb.WriteString(`<div class="kv-item"><div class="kv-label">` + EscapeHTML(it.label) +
			`</div><div class="kv-value">` + EscapeHTML(it.value) + `</div></div>`)
	}
	sb.WriteString("</div>")
	return sb.String()
}

// cell returns row cell or empty string when index is out of range.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func gridColumns(n int) string {
	return "repeat(" + strconv.Itoa(n) + ",minmax(0,1fr))"
}

// inlineStyle joins property/value pairs skipping empty values.
func inlineStyle(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if v := style.Clean(pairs[i+1]); v != "" {
			parts = append(parts, pairs[i]+":"+v)
		}
	}
	return strings.Join(parts, ";")
}

func imgTag(class, src, inline string) string {
	return `<img class="` + EscapeAttr(class) + `" src="` + EscapeAttr(src) + `" style="` + EscapeAttr(inline) + `" />`
}

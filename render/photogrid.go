package render

import (
	"strings"

	"docrender/binding"
	"docrender/document"
	"docrender/style"
)

// photoGrid renders photo block components as grid of captioned tiles. Tiles
// with neither caption nor image are dropped, empty grid renders nothing.
func (c *call) photoGrid(comps []document.Component, gridStyleID string) string {
	cascade := c.styles.Cascade(gridStyleID)

	captionStyle := inlineStyle(
		"text-align", cascade.String("", style.FieldCaptionAlign, DefaultGridCaptionAlign),
		"font-size", orDefault(style.FontSize(cascade.Scalar(style.FieldCaptionSize)), DefaultGridCaptionSize),
		"font-weight", orDefault(style.FontWeight(cascade.Scalar(style.FieldCaptionWeight)), DefaultGridCaptionWeight),
	)

	var tiles strings.Builder
	for _, tile := range document.PairTiles(comps) {
		var caption, src string
		if tile.Caption != nil {
			caption = binding.Text(tile.Caption.Binding, c.data.Field)
		}
		if tile.Image != nil {
			src = c.resolveImage(tile.Image.Binding)
		}
		if strings.TrimSpace(caption) == "" && src == "" {
			continue
		}

		tiles.WriteString(`<figure class="photo-tile">`)
		if src != "" {
			img := tile.Image
			tiles.WriteString(imgTag(c.styles.ClassFor(img.StyleID, "photo-img"), src, inlineStyle(
				"max-height", cascade.String(img.MaxHeight, style.FieldMaxHeight, DefaultImageMaxHeight),
				"object-fit", cascade.String(img.Fit, style.FieldImageFit, DefaultImageFit),
			)))
		}
		if strings.TrimSpace(caption) != "" {
			tiles.WriteString(`<figcaption class="photo-caption" style="` + EscapeAttr(captionStyle) + `">` +
				EscapeHTML(caption) + `</figcaption>`)
		}
		tiles.WriteString(`</figure>`)
	}
	if tiles.Len() == 0 {
		return ""
	}

	grid := inlineStyle(
		"grid-template-columns", gridColumns(cascade.Int(0, style.FieldColumns, DefaultGridColumns)),
		"gap", cascade.String("", style.FieldGap, DefaultGridGap),
	)
	return `<div class="` + EscapeAttr(c.styles.ClassFor(gridStyleID, "photo-grid")) + `" style="` + EscapeAttr(grid) + `">` +
		tiles.String() + `</div>`
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Package render turns decoded payload into single HTML document with
// embedded stylesheet.
package render

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"docrender/css"
	"docrender/document"
	"docrender/imageref"
	"docrender/style"
)

// Renderer is immutable and safe for concurrent use, every Render call builds
// its own style index, token scope and image normalizer.
type Renderer struct {
	settings Settings
	base     *css.Stylesheet
	log      *zap.Logger
}

// New creates renderer, blank settings fields are replaced with defaults.
func New(settings Settings, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("render")
	return &Renderer{
		settings: settings.withDefaults(),
		base:     parseBase(log),
		log:      log,
	}
}

// Render renders payload using default settings.
func Render(p *document.Payload) (string, error) {
	return New(DefaultSettings(), nil).Render(p)
}

// Render produces HTML document. The only error is document without block
// list or component index, data problems degrade to empty output or
// placeholders. Identical payloads produce byte identical output.
func (r *Renderer) Render(p *document.Payload) (string, error) {
	if p == nil {
		return "", fmt.Errorf("%w: no payload", document.ErrInvalidDocument)
	}
	if err := p.Document.Validate(); err != nil {
		return "", err
	}

	c := &call{
		data:   p.Data,
		styles: style.NewIndex(p.Document.Styles, r.log),
		images: imageref.New(
			imageref.WithEndpoint(r.settings.ImageEndpoint),
			imageref.WithAssetsBase(p.Data.AssetsBase()),
			imageref.WithExternalURLs(r.settings.AllowExternalURLs),
			imageref.WithLogger(r.log),
		),
		settings: &r.settings,
		log:      r.log,
	}

	photoBlockID := orDefault(strings.TrimSpace(p.Options.PhotoBlockID), r.settings.PhotoBlockID)
	gridStyleID := orDefault(strings.TrimSpace(p.Options.GridStyleID), r.settings.GridStyleID)
	_, hasGrid := c.styles.Lookup(gridStyleID)

	var body strings.Builder
	for _, b := range p.Document.Blocks {
		if b.PageBreakBefore {
			body.WriteString(`<section class="pb">`)
		} else {
			body.WriteString(`<section>`)
		}
		comps := p.Document.BlockComponents(b.ID)
		if hasGrid && b.ID == photoBlockID {
			body.WriteString(c.photoGrid(comps, gridStyleID))
		} else {
			for _, comp := range comps {
				body.WriteString(c.component(comp))
			}
		}
		body.WriteString(`</section>`)
	}

	var out strings.Builder
	out.WriteString(`<!doctype html><html`)
	if lang := r.language(p.Options.Lang); lang != "" {
		out.WriteString(` lang="` + EscapeAttr(lang) + `"`)
	}
	out.WriteString(`><head><meta charset="utf-8"><style>`)
	out.WriteString(styleEscaper.Replace(r.stylesheet(p, c).String()))
	out.WriteString(`</style></head><body>`)
	out.WriteString(body.String())
	out.WriteString(`</body></html>`)

	r.log.Debug("Document rendered",
		zap.Int("blocks", len(p.Document.Blocks)),
		zap.Int("styles", c.styles.Len()),
		zap.Int("bytes", out.Len()))
	return out.String(), nil
}

// stylesheet assembles document stylesheet: page directives, design tokens,
// base rules, compiled styles and configured extra rules.
func (r *Renderer) stylesheet(p *document.Payload, c *call) *css.Stylesheet {
	sheet := &css.Stylesheet{}
	sheet.AddRule(pageRule(normalizePage(p.Options.Page, r.settings.Page)))
	sheet.AddRule(TokenRule(p.Tokens))
	sheet.Append(r.base)
	sheet.Append(c.styles.Stylesheet())
	if r.settings.Extra != nil {
		extra := r.settings.Extra.Clone()
		extra.RewriteURLs(func(u string) string {
			if resolved := c.images.Normalize(u); resolved != "" {
				return resolved
			}
			return u
		})
		sheet.Append(extra)
	}
	return sheet
}

// language returns canonical BCP 47 tag for the document root. Payload value
// wins over configured one, invalid tags are ignored.
func (r *Renderer) language(requested string) string {
	for _, candidate := range []string{requested, r.settings.Language} {
		if candidate = strings.TrimSpace(candidate); candidate == "" {
			continue
		}
		tag, err := language.Parse(candidate)
		if err != nil {
			r.log.Debug("Ignoring invalid language tag", zap.String("lang", candidate), zap.Error(err))
			continue
		}
		return tag.String()
	}
	return ""
}

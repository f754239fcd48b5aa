package render

import (
	"docrender/css"
	"docrender/document"
	"docrender/imageref"
)

// Placeholders is default placeholder copy per component kind, component
// placeholderText overrides it.
type Placeholders struct {
	Text     string `yaml:"text"`
	Image    string `yaml:"image"`
	Table    string `yaml:"table"`
	KeyValue string `yaml:"key_value"`
}

// Settings are renderer wide parameters. They never change during renderer
// lifetime and are shared by concurrent calls.
type Settings struct {
	Placeholders Placeholders
	// ImageEndpoint is canonical retrieval endpoint template with {id}.
	ImageEndpoint     string
	AllowExternalURLs bool
	// PhotoBlockID and GridStyleID are used when payload options leave them
	// empty.
	PhotoBlockID string
	GridStyleID  string
	// Page fields are used when payload page options leave them empty.
	Page     document.PageOptions
	Language string
	// Extra is appended after compiled styles, url() references are resolved
	// as image references per call.
	Extra *css.Stylesheet
}

// Hard defaults.
const (
	DefaultPageSize   = "A4"
	DefaultPageMargin = "18mm"

	DefaultPhotoBlockID = "photos"
	DefaultGridStyleID  = "photo_grid"

	DefaultImageFit       = "contain"
	DefaultImageMaxWidth  = "100%"
	DefaultImageMaxHeight = "220px"

	DefaultKVColumns = 2
	DefaultKVGap     = "6pt"

	DefaultGridColumns       = 3
	DefaultGridGap           = "8pt"
	DefaultGridCaptionAlign  = "center"
	DefaultGridCaptionSize   = "10pt"
	DefaultGridCaptionWeight = "700"
)

// DefaultSettings returns settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Placeholders: Placeholders{
			Text:     "N/D",
			Image:    "Imagen no disponible",
			Table:    "Tabla vacía",
			KeyValue: "Sin datos",
		},
		ImageEndpoint: imageref.DefaultEndpoint,
		PhotoBlockID:  DefaultPhotoBlockID,
		GridStyleID:   DefaultGridStyleID,
		Page: document.PageOptions{
			Size:         DefaultPageSize,
			MarginTop:    DefaultPageMargin,
			MarginRight:  DefaultPageMargin,
			MarginBottom: DefaultPageMargin,
			MarginLeft:   DefaultPageMargin,
		},
	}
}

// withDefaults fills blank fields from DefaultSettings.
func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	s.Placeholders.Text = pick(s.Placeholders.Text, def.Placeholders.Text)
	s.Placeholders.Image = pick(s.Placeholders.Image, def.Placeholders.Image)
	s.Placeholders.Table = pick(s.Placeholders.Table, def.Placeholders.Table)
	s.Placeholders.KeyValue = pick(s.Placeholders.KeyValue, def.Placeholders.KeyValue)
	s.ImageEndpoint = pick(s.ImageEndpoint, def.ImageEndpoint)
	s.PhotoBlockID = pick(s.PhotoBlockID, def.PhotoBlockID)
	s.GridStyleID = pick(s.GridStyleID, def.GridStyleID)
	s.Page = normalizePage(s.Page, def.Page)
	return s
}

// Package document defines declarative document description consumed by the
// renderer: blocks, components, style table, runtime data and render options.
// Everything here is built from caller supplied payload at the start of a call
// and is never shared between calls.
package document

import (
	"errors"
	"fmt"

	"github.com/rupor-github/gencfg"
)

// ErrInvalidDocument is returned when document lacks block list or component
// index entirely, this is the only condition treated as caller error.
var ErrInvalidDocument = errors.New("invalid document")

// Payload is everything a single render call needs.
type Payload struct {
	Document Document
	Data     Data
	// Flags are accepted and carried along, renderer does not interpret them.
	Flags   []string
	Tokens  map[string]string
	Options Options
}

// Document is ordered block list with components indexed by block id and a
// style table.
type Document struct {
	Blocks     []Block                `validate:"required"`
	Components map[string][]Component `validate:"required"`
	Styles     []StyleEntry
}

// Block is an ordered document section.
type Block struct {
	ID              string
	PageBreakBefore bool
}

// StyleEntry is a named bundle of visual properties. Entries are purely
// declarative records.
type StyleEntry struct {
	StyleID    Scalar `json:"style_id" yaml:"style_id"`
	Font       Scalar `json:"font" yaml:"font"`
	Size       Scalar `json:"size" yaml:"size"`
	Weight     Scalar `json:"weight" yaml:"weight"`
	Color      Scalar `json:"color" yaml:"color"`
	Align      Scalar `json:"align" yaml:"align"`
	LineHeight Scalar `json:"line_height" yaml:"line_height"`
	Background Scalar `json:"bg" yaml:"bg"`
	Padding    Scalar `json:"padding" yaml:"padding"`
	Border     Scalar `json:"border" yaml:"border"`
	Width      Scalar `json:"width" yaml:"width"`
	MaxWidth   Scalar `json:"max_width" yaml:"max_width"`
	MaxHeight  Scalar `json:"max_height" yaml:"max_height"`
	ImageFit   Scalar `json:"image_fit" yaml:"image_fit"`

	// layout grid parameters
	Columns       Scalar `json:"columns" yaml:"columns"`
	Gap           Scalar `json:"gap" yaml:"gap"`
	Variant       Scalar `json:"variant" yaml:"variant"`
	CaptionSize   Scalar `json:"caption_size" yaml:"caption_size"`
	CaptionWeight Scalar `json:"caption_weight" yaml:"caption_weight"`
	CaptionAlign  Scalar `json:"caption_align" yaml:"caption_align"`
}

// Options are per call rendering options.
type Options struct {
	Page PageOptions
	// Lang is BCP 47 tag for the document root, ignored when invalid.
	Lang string
	// PhotoBlockID and GridStyleID designate block rendered as photo grid,
	// empty values defer to renderer settings.
	PhotoBlockID string
	GridStyleID  string
	// Layout is only used by photo layout planner.
	Layout LayoutOptions
}

// LayoutOptions fix photo layout geometry, nil fields are chosen by planner.
type LayoutOptions struct {
	Grid *GridSize
	// Margin and Gap are fractions of slide size.
	Margin *float64
	Gap    *float64
}

// GridSize is number of rows and columns of a slide.
type GridSize struct {
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
}

// PageOptions describe printed page, empty fields are normalized by renderer.
type PageOptions struct {
	Size         string `json:"size" yaml:"size"`
	MarginTop    string `json:"marginTop" yaml:"marginTop"`
	MarginRight  string `json:"marginRight" yaml:"marginRight"`
	MarginBottom string `json:"marginBottom" yaml:"marginBottom"`
	MarginLeft   string `json:"marginLeft" yaml:"marginLeft"`
}

// Validate checks structural requirements of the document.
func (d *Document) Validate() error {
	if err := gencfg.Validate(d); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// BlockComponents returns component sequence of the block, nil when block
// has no components.
func (d *Document) BlockComponents(id string) []Component {
	return d.Components[id]
}

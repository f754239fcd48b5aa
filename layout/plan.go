// Package layout plans placement of photo block tiles on fixed size slides.
// Planner output is consumed by external slide producers which substitute
// text placeholders and drop images into relative boxes.
package layout

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docrender/binding"
	"docrender/document"
	"docrender/imageref"
)

// UnitRelative means all coordinates are fractions of slide size.
const UnitRelative = "relative"

// Item is a single photo of the photo block.
type Item struct {
	SrcKey string `json:"srcKey" yaml:"srcKey"`
	CapKey string `json:"capKey,omitempty" yaml:"capKey,omitempty"`
	// Src is raw reference from data, URL is its normalized form.
	Src     string `json:"src,omitempty" yaml:"src,omitempty"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
	Caption string `json:"caption" yaml:"caption"`
	Idx     int    `json:"idx" yaml:"idx"`
}

// Placement is an item positioned on slide.
type Placement struct {
	Item `yaml:",inline"`
	X    float64 `json:"x_rel" yaml:"x_rel"`
	Y    float64 `json:"y_rel" yaml:"y_rel"`
	W    float64 `json:"w_rel" yaml:"w_rel"`
	H    float64 `json:"h_rel" yaml:"h_rel"`
}

// Slide holds placements of a single page.
type Slide struct {
	Items []Placement `json:"items" yaml:"items"`
}

// Plan is planner result.
type Plan struct {
	Unit     string            `json:"unit" yaml:"unit"`
	Grid     document.GridSize `json:"grid" yaml:"grid"`
	PerSlide int               `json:"per_slide" yaml:"per_slide"`
	Count    int               `json:"count" yaml:"count"`
	TextMap  map[string]string `json:"textMap" yaml:"textMap"`
	Slides   []Slide           `json:"slides" yaml:"slides"`
}

// Settings are planner wide parameters.
type Settings struct {
	PhotoBlockID      string
	ImageEndpoint     string
	AllowExternalURLs bool
	// Grid, Margin and Gap are used when payload does not fix them.
	Grid   *document.GridSize
	Margin *float64
	Gap    *float64
}

// Planner is immutable and safe for concurrent use.
type Planner struct {
	settings Settings
	log      *zap.Logger
}

// New creates planner.
func New(settings Settings, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	if settings.PhotoBlockID == "" {
		settings.PhotoBlockID = "photos"
	}
	return &Planner{settings: settings, log: log.Named("layout")}
}

// Plan builds slide plan from payload. Payload without component index is
// rejected with document.ErrInvalidDocument, block list is not required.
func (pl *Planner) Plan(p *document.Payload) (*Plan, error) {
	if p == nil || p.Document.Components == nil {
		return nil, fmt.Errorf("%w: component index is missing", document.ErrInvalidDocument)
	}

	images := imageref.New(
		imageref.WithEndpoint(pl.settings.ImageEndpoint),
		imageref.WithAssetsBase(p.Data.AssetsBase()),
		imageref.WithExternalURLs(pl.settings.AllowExternalURLs),
		imageref.WithLogger(pl.log),
	)

	items := pl.items(p, images)

	opts := p.Options.Layout
	grid := PickGrid(len(items))
	switch {
	case opts.Grid != nil:
		grid = *opts.Grid
	case pl.settings.Grid != nil:
		grid = *pl.settings.Grid
	}
	margin := firstOf(opts.Margin, pl.settings.Margin, DefaultMargin)
	gap := firstOf(opts.Gap, pl.settings.Gap, DefaultGap)

	boxes, err := Boxes(grid, margin, gap)
	if err != nil {
		return nil, fmt.Errorf("unable to build slide layout: %w", err)
	}

	plan := &Plan{
		Unit:     UnitRelative,
		Grid:     grid,
		PerSlide: len(boxes),
		Count:    len(items),
		TextMap:  textMap(p),
		Slides:   make([]Slide, 0, (len(items)+len(boxes)-1)/len(boxes)),
	}
	for start := 0; start < len(items); start += len(boxes) {
		chunk := items[start:min(start+len(boxes), len(items))]
		slide := Slide{Items: make([]Placement, 0, len(chunk))}
		for i, it := range chunk {
			b := boxes[i]
			slide.Items = append(slide.Items, Placement{Item: it, X: b.X, Y: b.Y, W: b.W, H: b.H})
		}
		plan.Slides = append(plan.Slides, slide)
	}

	pl.log.Debug("Layout planned",
		zap.Int("items", plan.Count),
		zap.Int("slides", len(plan.Slides)),
		zap.String("grid", fmt.Sprintf("%dx%d", grid.Rows, grid.Cols)))
	return plan, nil
}

// items pairs photo block components into tiles, only tiles with image
// binding become items.
func (pl *Planner) items(p *document.Payload, images *imageref.Normalizer) []Item {
	blockID := strings.TrimSpace(p.Options.PhotoBlockID)
	if blockID == "" {
		blockID = pl.settings.PhotoBlockID
	}

	var items []Item
	for _, tile := range document.PairTiles(p.Document.BlockComponents(blockID)) {
		if tile.Image == nil {
			continue
		}
		srcKey, ok := binding.Extract(tile.Image.Binding, binding.KindImage)
		if !ok {
			continue
		}
		it := Item{
			SrcKey: srcKey,
			Src:    strings.TrimSpace(p.Data.Field(srcKey)),
			Idx:    len(items),
		}
		it.URL = images.Normalize(it.Src)
		if tile.Caption != nil {
			if capKey, ok := binding.Extract(tile.Caption.Binding, binding.KindColumn); ok {
				it.CapKey = capKey
				it.Caption = p.Data.Field(capKey)
			}
		}
		items = append(items, it)
	}
	return items
}

// textMap maps every column placeholder (first one per component) found in
// any block to its stringified value.
func textMap(p *document.Payload) map[string]string {
	out := make(map[string]string)
	for _, comps := range p.Document.Components {
		for _, c := range comps {
			if name, ok := binding.Extract(c.Expr(), binding.KindColumn); ok {
				out["{{col:"+name+"}}"] = p.Data.Field(name)
			}
		}
	}
	return out
}

func firstOf(fixed, configured *float64, def float64) float64 {
	switch {
	case fixed != nil:
		return *fixed
	case configured != nil:
		return *configured
	}
	return def
}

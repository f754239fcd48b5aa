package document

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"docrender/common"
)

// Wire representation of the payload. Both current (document,
// componentsByBlock, designTokens) and legacy (ast, byBlock, cssTokens)
// spellings are accepted, current ones take precedence.
type (
	wirePayload struct {
		Document     *wireDocument     `json:"document" yaml:"document"`
		AST          *wireDocument     `json:"ast" yaml:"ast"`
		Data         map[string]any    `json:"data" yaml:"data"`
		Flags        []string          `json:"flags" yaml:"flags"`
		DesignTokens map[string]Scalar `json:"designTokens" yaml:"designTokens"`
		CSSTokens    map[string]Scalar `json:"cssTokens" yaml:"cssTokens"`
		Options      wireOptions       `json:"options" yaml:"options"`
	}

	wireDocument struct {
		Blocks            []wireBlock                `json:"blocks" yaml:"blocks"`
		ComponentsByBlock map[string][]wireComponent `json:"componentsByBlock" yaml:"componentsByBlock"`
		ByBlock           map[string][]wireComponent `json:"byBlock" yaml:"byBlock"`
		Styles            []StyleEntry               `json:"styles" yaml:"styles"`
	}

	wireBlock struct {
		BlockID         Scalar `json:"block_id" yaml:"block_id"`
		PageBreakBefore bool   `json:"page_break_before" yaml:"page_break_before"`
	}

	wireComponent struct {
		Type             string   `json:"type" yaml:"type"`
		Binding          string   `json:"binding" yaml:"binding"`
		StyleID          Scalar   `json:"style_id" yaml:"style_id"`
		PlaceholderMode  string   `json:"placeholderMode" yaml:"placeholderMode"`
		PlaceholderText  string   `json:"placeholderText" yaml:"placeholderText"`
		PlaceholderStyle Scalar   `json:"placeholderStyle" yaml:"placeholderStyle"`
		ImageFit         Scalar   `json:"image_fit" yaml:"image_fit"`
		MaxWidth         Scalar   `json:"max_width" yaml:"max_width"`
		MaxHeight        Scalar   `json:"max_height" yaml:"max_height"`
		Headers          []Scalar `json:"headers" yaml:"headers"`
		LabelCol         Scalar   `json:"label_col" yaml:"label_col"`
		ValueCol         Scalar   `json:"value_col" yaml:"value_col"`
		Columns          Scalar   `json:"columns" yaml:"columns"`
		Gap              Scalar   `json:"gap" yaml:"gap"`
		Variant          Scalar   `json:"variant" yaml:"variant"`
	}

	wireOptions struct {
		Page       PageOptions `json:"page" yaml:"page"`
		Lang       string      `json:"lang" yaml:"lang"`
		PhotoBlock string      `json:"photoBlock" yaml:"photoBlock"`
		GridStyle  string      `json:"gridStyle" yaml:"gridStyle"`
		Grid       *GridSize   `json:"grid" yaml:"grid"`
		Margin     *float64    `json:"margin" yaml:"margin"`
		Gap        *float64    `json:"gap" yaml:"gap"`
	}
)

// Decode reads single payload from r. JSON numbers in data context are kept
// as literals to stringify them exactly as they were supplied.
func Decode(r io.Reader, format common.PayloadFmt) (*Payload, error) {
	var w wirePayload
	switch format {
	case common.PayloadFmtYAML:
		if err := yaml.NewDecoder(r).Decode(&w); err != nil && err != io.EOF {
			return nil, fmt.Errorf("unable to decode yaml payload: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&w); err != nil {
			return nil, fmt.Errorf("unable to decode json payload: %w", err)
		}
	}
	return w.build(), nil
}

func (w *wirePayload) build() *Payload {
	p := &Payload{
		Data:  Data(w.Data),
		Flags: w.Flags,
		Options: Options{
			Page:         w.Options.Page,
			Lang:         strings.TrimSpace(w.Options.Lang),
			PhotoBlockID: w.Options.PhotoBlock,
			GridStyleID:  w.Options.GridStyle,
			Layout: LayoutOptions{
				Grid:   w.Options.Grid,
				Margin: w.Options.Margin,
				Gap:    w.Options.Gap,
			},
		},
	}
	if p.Data == nil {
		p.Data = Data{}
	}

	tokens := w.DesignTokens
	if tokens == nil {
		tokens = w.CSSTokens
	}
	p.Tokens = make(map[string]string, len(tokens))
	for k, v := range tokens {
		p.Tokens[k] = v.String()
	}

	doc := w.Document
	if doc == nil {
		doc = w.AST
	}
	if doc != nil {
		p.Document = doc.build()
	}
	return p
}

func (w *wireDocument) build() Document {
	d := Document{Styles: w.Styles}
	if w.Blocks != nil {
		d.Blocks = make([]Block, 0, len(w.Blocks))
		for _, b := range w.Blocks {
			d.Blocks = append(d.Blocks, Block{ID: b.BlockID.String(), PageBreakBefore: b.PageBreakBefore})
		}
	}
	index := w.ComponentsByBlock
	if index == nil {
		index = w.ByBlock
	}
	if index != nil {
		d.Components = make(map[string][]Component, len(index))
		for id, comps := range index {
			seq := make([]Component, 0, len(comps))
			for _, c := range comps {
				seq = append(seq, c.build())
			}
			d.Components[id] = seq
		}
	}
	return d
}

func (c *wireComponent) build() Component {
	// unrecognized placeholder mode means hidden
	mode, _ := common.ParsePlaceholderMode(c.PlaceholderMode)
	base := Common{
		StyleID:            c.StyleID.Trimmed(),
		Placeholder:        mode,
		PlaceholderText:    c.PlaceholderText,
		PlaceholderStyleID: c.PlaceholderStyle.Trimmed(),
	}

	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case "text":
		return Text{Common: base, Binding: c.Binding}
	case "image":
		return Image{
			Common:    base,
			Binding:   c.Binding,
			Fit:       c.ImageFit.Trimmed(),
			MaxWidth:  c.MaxWidth.Trimmed(),
			MaxHeight: c.MaxHeight.Trimmed(),
		}
	case "table":
		t := Table{Common: base, Binding: c.Binding}
		if len(c.Headers) > 0 {
			t.Headers = make([]string, len(c.Headers))
			for i, h := range c.Headers {
				t.Headers[i] = h.String()
			}
		}
		return t
	case "keyvalue", "key-value", "key_value", "kv":
		kv := KeyValue{
			Common:   base,
			Binding:  c.Binding,
			LabelCol: 0,
			ValueCol: 1,
			Gap:      c.Gap.Trimmed(),
			Variant:  c.Variant.Trimmed(),
		}
		if n, ok := c.LabelCol.Int(); ok {
			kv.LabelCol = n
		}
		if n, ok := c.ValueCol.Int(); ok {
			kv.ValueCol = n
		}
		if n, ok := c.Columns.Int(); ok && n > 0 {
			kv.Columns = n
		}
		return kv
	default:
		return Unknown{Common: base, Type: c.Type, Binding: c.Binding}
	}
}

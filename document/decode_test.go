package document

import (
	"errors"
	"strings"
	"testing"

	"docrender/common"
)

const jsonPayload = `{
  "document": {
    "blocks": [
      {"block_id": "header"},
      {"block_id": 2, "page_break_before": true}
    ],
    "componentsByBlock": {
      "header": [
        {"type": "text", "binding": "{{col:title}}", "style_id": "hero style"},
        {"type": "Image", "binding": "{{img:logo}}", "max_height": 120, "placeholderMode": "visible"}
      ],
      "2": [
        {"type": "table", "binding": "{{table:items}}", "headers": ["Name", 2]},
        {"type": "key-value", "binding": "{{table:facts}}", "label_col": "1", "value_col": 0, "columns": 3},
        {"type": "chart", "binding": "{{col:x}}"}
      ]
    },
    "styles": [
      {"style_id": "hero style", "size": 14, "weight": "bold", "color": {"r": 1}}
    ]
  },
  "data": {"title": "Report", "count": 12.50, "items": [["a", 1], ["b", true]]},
  "flags": ["draft"],
  "designTokens": {"--brand": "#c00", "--gap": 4},
  "options": {"page": {"size": "Letter", "marginTop": "10mm"}, "lang": " es "}
}`

func TestDecodeJSON(t *testing.T) {
	p, err := Decode(strings.NewReader(jsonPayload), common.PayloadFmtJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if err := p.Document.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if len(p.Document.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(p.Document.Blocks))
	}
	if b := p.Document.Blocks[1]; b.ID != "2" || !b.PageBreakBefore {
		t.Errorf("unexpected second block %+v", b)
	}

	header := p.Document.BlockComponents("header")
	if len(header) != 2 {
		t.Fatalf("expected 2 header components, got %d", len(header))
	}
	text, ok := header[0].(Text)
	if !ok || text.StyleID != "hero style" || text.Binding != "{{col:title}}" {
		t.Errorf("unexpected text component %#v", header[0])
	}
	img, ok := header[1].(Image)
	if !ok {
		t.Fatalf("expected image component, got %T", header[1])
	}
	if img.MaxHeight != "120" || img.Placeholder != common.PlaceholderModeVisible {
		t.Errorf("unexpected image component %+v", img)
	}

	body := p.Document.BlockComponents("2")
	if len(body) != 3 {
		t.Fatalf("expected 3 body components, got %d", len(body))
	}
	tbl := body[0].(Table)
	if len(tbl.Headers) != 2 || tbl.Headers[1] != "2" {
		t.Errorf("unexpected headers %v", tbl.Headers)
	}
	kv := body[1].(KeyValue)
	if kv.LabelCol != 1 || kv.ValueCol != 0 || kv.Columns != 3 {
		t.Errorf("unexpected key-value %+v", kv)
	}
	if u, ok := body[2].(Unknown); !ok || u.Type != "chart" || u.Kind() != KindUnknown {
		t.Errorf("expected unknown component, got %#v", body[2])
	}

	if len(p.Document.Styles) != 1 {
		t.Fatalf("expected 1 style, got %d", len(p.Document.Styles))
	}
	st := p.Document.Styles[0]
	if st.Size != "14" || st.Weight != "bold" || st.Color != "" {
		t.Errorf("unexpected style %+v", st)
	}

	if got := p.Data.Field("count"); got != "12.50" {
		t.Errorf("number literal not preserved: %q", got)
	}
	rows := p.Data.Rows("items")
	if len(rows) != 2 || rows[0][1] != "1" || rows[1][1] != "true" {
		t.Errorf("unexpected rows %v", rows)
	}

	if p.Tokens["--brand"] != "#c00" || p.Tokens["--gap"] != "4" {
		t.Errorf("unexpected tokens %v", p.Tokens)
	}
	if len(p.Flags) != 1 || p.Flags[0] != "draft" {
		t.Errorf("unexpected flags %v", p.Flags)
	}
	if p.Options.Page.Size != "Letter" || p.Options.Page.MarginTop != "10mm" || p.Options.Lang != "es" {
		t.Errorf("unexpected options %+v", p.Options)
	}
}

func TestDecodeLegacySpellings(t *testing.T) {
	input := `{
  "ast": {
    "blocks": [{"block_id": "b"}],
    "byBlock": {"b": [{"type": "kv", "binding": "{{table:t}}"}]}
  },
  "cssTokens": {"--x": "1"}
}`
	p, err := Decode(strings.NewReader(input), common.PayloadFmtJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if err := p.Document.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	comps := p.Document.BlockComponents("b")
	if len(comps) != 1 {
		t.Fatalf("expected 1 component, got %d", len(comps))
	}
	kv, ok := comps[0].(KeyValue)
	if !ok || kv.LabelCol != 0 || kv.ValueCol != 1 || kv.Columns != 0 {
		t.Errorf("unexpected key-value defaults %#v", comps[0])
	}
	if p.Tokens["--x"] != "1" {
		t.Errorf("legacy tokens not picked up: %v", p.Tokens)
	}
	if p.Data == nil {
		t.Error("data should default to empty map")
	}
}

func TestDecodeCurrentSpellingWins(t *testing.T) {
	input := `{
  "document": {"blocks": [{"block_id": "new"}], "componentsByBlock": {}},
  "ast": {"blocks": [{"block_id": "old"}], "byBlock": {}},
  "designTokens": {"--a": "new"},
  "cssTokens": {"--a": "old"}
}`
	p, err := Decode(strings.NewReader(input), common.PayloadFmtJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Document.Blocks[0].ID != "new" || p.Tokens["--a"] != "new" {
		t.Errorf("legacy spelling took precedence: %+v %v", p.Document.Blocks, p.Tokens)
	}
}

func TestDecodeYAML(t *testing.T) {
	input := `
document:
  blocks:
    - block_id: photos
  componentsByBlock:
    photos:
      - type: text
        binding: "{{col:cap1}}"
      - type: image
        binding: "{{img:src1}}"
        image_fit: cover
  styles:
    - style_id: photo_grid
      columns: 2
      gap: ~
data:
  cap1: Front
  when: 2024-03-01
  n: 7
`
	p, err := Decode(strings.NewReader(input), common.PayloadFmtYAML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if err := p.Document.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	comps := p.Document.BlockComponents("photos")
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}
	if img := comps[1].(Image); img.Fit != "cover" {
		t.Errorf("unexpected fit %q", img.Fit)
	}
	st := p.Document.Styles[0]
	if n, ok := st.Columns.Int(); !ok || n != 2 || st.Gap != "" {
		t.Errorf("unexpected grid style %+v", st)
	}
	if got := p.Data.Field("when"); got != "2024-03-01" {
		t.Errorf("date field = %q", got)
	}
	if got := p.Data.Field("n"); got != "7" {
		t.Errorf("int field = %q", got)
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	p, err := Decode(strings.NewReader(""), common.PayloadFmtYAML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if err := p.Document.Validate(); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"document": [`), common.PayloadFmtJSON); err == nil {
		t.Error("expected error for malformed json")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr bool
	}{
		{"missing blocks", Document{Components: map[string][]Component{}}, true},
		{"missing components", Document{Blocks: []Block{}}, true},
		{"empty but present", Document{Blocks: []Block{}, Components: map[string][]Component{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("error does not wrap ErrInvalidDocument: %v", err)
			}
		})
	}
}

package document

import "docrender/common"

// Kind identifies component variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindImage
	KindTable
	KindKeyValue
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindTable:
		return "table"
	case KindKeyValue:
		return "key-value"
	default:
		return "unknown"
	}
}

// Component is a closed set of renderable units: Text, Image, Table, KeyValue
// and Unknown for type tags the renderer does not know about.
type Component interface {
	Kind() Kind
	Base() Common
	// Expr returns binding expression.
	Expr() string
	component()
}

// Common holds fields every component variant may carry.
type Common struct {
	StyleID            string
	Placeholder        common.PlaceholderMode
	PlaceholderText    string
	PlaceholderStyleID string
}

func (c Common) Base() Common { return c }

// Text renders `col` bindings, Binding may mix several placeholders with
// literal text.
type Text struct {
	Common
	Binding string
}

// Image renders the first `img` binding. Empty sizing fields fall back to
// referenced style and then to defaults.
type Image struct {
	Common
	Binding   string
	Fit       string
	MaxWidth  string
	MaxHeight string
}

// Table renders the first `table` binding. When Headers is empty the first
// data row is used as header row.
type Table struct {
	Common
	Binding string
	Headers []string
}

// KeyValue renders rows of a `table` binding as label/value tiles. Zero
// Columns and empty Gap/Variant defer to style and defaults.
type KeyValue struct {
	Common
	Binding  string
	LabelCol int
	ValueCol int
	Columns  int
	Gap      string
	Variant  string
}

// Unknown keeps components with unrecognized type tag, they are never
// rendered.
type Unknown struct {
	Common
	Type    string
	Binding string
}

func (Text) Kind() Kind     { return KindText }
func (Image) Kind() Kind    { return KindImage }
func (Table) Kind() Kind    { return KindTable }
func (KeyValue) Kind() Kind { return KindKeyValue }
func (Unknown) Kind() Kind  { return KindUnknown }

func (c Text) Expr() string     { return c.Binding }
func (c Image) Expr() string    { return c.Binding }
func (c Table) Expr() string    { return c.Binding }
func (c KeyValue) Expr() string { return c.Binding }
func (c Unknown) Expr() string  { return c.Binding }

func (Text) component()     {}
func (Image) component()    {}
func (Table) component()    {}
func (KeyValue) component() {}
func (Unknown) component()  {}

package style

import "docrender/document"

// Field selects single property of style entry.
type Field func(document.StyleEntry) document.Scalar

// Style entry fields used by cascaded attributes.
var (
	FieldImageFit      Field = func(s document.StyleEntry) document.Scalar { return s.ImageFit }
	FieldMaxWidth      Field = func(s document.StyleEntry) document.Scalar { return s.MaxWidth }
	FieldMaxHeight     Field = func(s document.StyleEntry) document.Scalar { return s.MaxHeight }
	FieldColumns       Field = func(s document.StyleEntry) document.Scalar { return s.Columns }
	FieldGap           Field = func(s document.StyleEntry) document.Scalar { return s.Gap }
	FieldVariant       Field = func(s document.StyleEntry) document.Scalar { return s.Variant }
	FieldCaptionSize   Field = func(s document.StyleEntry) document.Scalar { return s.CaptionSize }
	FieldCaptionWeight Field = func(s document.StyleEntry) document.Scalar { return s.CaptionWeight }
	FieldCaptionAlign  Field = func(s document.StyleEntry) document.Scalar { return s.CaptionAlign }
)

// Cascade resolves attributes in three tiers: component override, referenced
// style entry, hard default.
type Cascade struct {
	entry document.StyleEntry
	found bool
}

// Cascade returns resolver bound to the style id, unknown ids skip the middle
// tier.
func (idx *Index) Cascade(id string) Cascade {
	entry, ok := idx.Lookup(id)
	return Cascade{entry: entry, found: ok}
}

// Scalar returns raw style field, empty when style is unknown.
func (c Cascade) Scalar(field Field) document.Scalar {
	if !c.found {
		return ""
	}
	return field(c.entry)
}

// String returns first non-blank of override, style field and def.
func (c Cascade) String(override string, field Field, def string) string {
	if v := Clean(override); v != "" {
		return v
	}
	if c.found {
		if v := Value(field(c.entry)); v != "" {
			return v
		}
	}
	return def
}

// Int returns override when positive, else positive integer style field,
// else def.
func (c Cascade) Int(override int, field Field, def int) int {
	if override > 0 {
		return override
	}
	if c.found {
		if n, ok := field(c.entry).Int(); ok && n > 0 {
			return n
		}
	}
	return def
}

package document

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// AssetsBaseField is reserved data field carrying external asset base URL.
// Empty value means site relative.
const AssetsBaseField = "assetsBase"

// Data is the runtime data context: flat field to scalar mapping plus named
// row sequences addressed by table bindings.
type Data map[string]any

// Field returns stringified scalar value of the field, absent, null and
// composite values are empty.
func (d Data) Field(name string) string {
	v, ok := d[name]
	if !ok {
		return ""
	}
	return Stringify(v)
}

// Rows returns named tabular data with every cell stringified. Anything which
// is not a sequence yields nil. Scalar rows become single cell rows, object
// rows are skipped.
func (d Data) Rows(name string) [][]string {
	seq, ok := d[name].([]any)
	if !ok {
		return nil
	}
	rows := make([][]string, 0, len(seq))
	for _, r := range seq {
		switch row := r.(type) {
		case []any:
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = Stringify(c)
			}
			rows = append(rows, cells)
		case map[string]any:
			continue
		default:
			rows = append(rows, []string{Stringify(row)})
		}
	}
	return rows
}

// AssetsBase returns configured asset base URL without trailing slashes.
func (d Data) AssetsBase() string {
	return strings.TrimRight(strings.TrimSpace(d.Field(AssetsBaseField)), "/")
}

// Stringify converts decoded scalar into its textual form.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	case Scalar:
		return string(val)
	}
	return ""
}

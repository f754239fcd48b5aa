package document

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Scalar is a declarative value which may arrive either as JSON/YAML string,
// number or boolean. Number literals are kept verbatim. Composite values are
// not scalars and decode as empty.
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*s = ""
		return nil
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Scalar(v)
	case '{', '[', 'n':
		*s = ""
	default:
		*s = Scalar(b)
	}
	return nil
}

func (s *Scalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = Scalar(n.Value)
	return nil
}

func (s Scalar) String() string {
	return string(s)
}

// Trimmed returns value without surrounding whitespace.
func (s Scalar) Trimmed() string {
	return strings.TrimSpace(string(s))
}

func (s Scalar) IsEmpty() bool {
	return s.Trimmed() == ""
}

// Int interprets value as integer, "2" and "2.0" are both 2.
func (s Scalar) Int() (int, bool) {
	v := s.Trimmed()
	if v == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// IsNumber reports whether value is a bare number without unit.
func (s Scalar) IsNumber() bool {
	f, err := strconv.ParseFloat(s.Trimmed(), 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Package common keeps enums shared by the document model, the renderer and
// the configuration.
package common

import (
	"fmt"
	"strings"
)

// Placeholder policy applied when a component resolves to no value.
// ENUM(hidden, visible)
type PlaceholderMode int

const (
	PlaceholderModeHidden PlaceholderMode = iota
	PlaceholderModeVisible
)

var placeholderModeNames = []string{"hidden", "visible"}

func (m PlaceholderMode) String() string {
	if m >= 0 && int(m) < len(placeholderModeNames) {
		return placeholderModeNames[m]
	}
	return fmt.Sprintf("PlaceholderMode(%d)", int(m))
}

// ParsePlaceholderMode is case insensitive, anything but "visible" means
// hidden. Error is returned for unrecognized values so callers could log it.
func ParsePlaceholderMode(name string) (PlaceholderMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hidden":
		return PlaceholderModeHidden, nil
	case "visible":
		return PlaceholderModeVisible, nil
	}
	return PlaceholderModeHidden, fmt.Errorf("%s is not a valid PlaceholderMode, try [%s]", name, strings.Join(placeholderModeNames, ", "))
}

// Visual variant of key-value grid.
// ENUM(boxed, compact)
type KVVariant int

const (
	KVVariantBoxed KVVariant = iota
	KVVariantCompact
)

var kvVariantNames = []string{"boxed", "compact"}

func (v KVVariant) String() string {
	if v >= 0 && int(v) < len(kvVariantNames) {
		return kvVariantNames[v]
	}
	return fmt.Sprintf("KVVariant(%d)", int(v))
}

func ParseKVVariant(name string) (KVVariant, error) {
	for i, n := range kvVariantNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return KVVariant(i), nil
		}
	}
	return KVVariantBoxed, fmt.Errorf("%s is not a valid KVVariant, try [%s]", name, strings.Join(kvVariantNames, ", "))
}

// Specification of payload encoding.
// ENUM(json, yaml)
type PayloadFmt int

const (
	PayloadFmtJSON PayloadFmt = iota
	PayloadFmtYAML
)

var payloadFmtNames = []string{"json", "yaml"}

func (p PayloadFmt) String() string {
	if p >= 0 && int(p) < len(payloadFmtNames) {
		return payloadFmtNames[p]
	}
	return fmt.Sprintf("PayloadFmt(%d)", int(p))
}

// PayloadFmtFromExt maps file extension to payload encoding, second value is
// false when extension is not recognized.
func PayloadFmtFromExt(ext string) (PayloadFmt, bool) {
	switch strings.ToLower(ext) {
	case ".json":
		return PayloadFmtJSON, true
	case ".yaml", ".yml":
		return PayloadFmtYAML, true
	}
	return PayloadFmtJSON, false
}

func ParsePayloadFmt(name string) (PayloadFmt, error) {
	for i, n := range payloadFmtNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return PayloadFmt(i), nil
		}
	}
	return PayloadFmtJSON, fmt.Errorf("%s is not a valid PayloadFmt, try [%s]", name, strings.Join(payloadFmtNames, ", "))
}

// Ext returns file extension used when writing data in this format.
func (p PayloadFmt) Ext() string {
	if p == PayloadFmtYAML {
		return ".yaml"
	}
	return ".json"
}

// PayloadFmtNames returns names of supported payload encodings.
func PayloadFmtNames() []string {
	return append([]string(nil), payloadFmtNames...)
}

package config

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxFileNameLen is a common file system limit for a single path element.
const maxFileNameLen = 240

const badFileName = "_bad_file_name_"

// CleanFileName makes file name out of arbitrary text coming from payloads
// and name templates: characters not allowed on this platform and control
// characters are removed, runs of white space become single space and result
// is cut to the file system limit.
func CleanFileName(in string) string {
	var b strings.Builder
	space := false
	for _, sym := range in {
		switch {
		case sym == 0 || unicode.IsControl(sym) && !unicode.IsSpace(sym) || strings.ContainsRune(forbiddenRunes, sym):
			continue
		case unicode.IsSpace(sym):
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(sym)
	}

	out := strings.TrimRight(strings.TrimLeft(b.String(), "."), ". ")
	for len(out) > maxFileNameLen {
		_, size := utf8.DecodeLastRuneInString(out)
		out = out[:len(out)-size]
	}
	if len(out) == 0 {
		out = badFileName
	}
	return out
}

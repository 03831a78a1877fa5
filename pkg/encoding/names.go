// Package encoding provides text decoding for names stored in voxel files.
package encoding

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeName returns a node or layer name as UTF-8. Older editors wrote
// names in the Windows ANSI code page; anything that is not valid UTF-8 is
// decoded as Windows-1252. Returns the original string if conversion fails.
func DecodeName(raw string) string {
	if utf8.ValidString(raw) {
		return raw
	}
	decoded, err := charmap.Windows1252.NewDecoder().String(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// SanitizeIdentifier makes a name usable as an OBJ group or MTL material
// identifier by replacing whitespace and control characters with '_'.
func SanitizeIdentifier(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range DecodeName(name) {
		if r <= ' ' || r == 0x7f {
			r = '_'
		}
		out = append(out, r)
	}
	return string(out)
}

package ntfs

import (
	"strings"
)

// forbiddenChars are the printable characters NTFS rejects in a name
// component. Control characters (code points 0-31) are rejected as well.
const forbiddenChars = `<>:"/\|?*`

// trimCutset holds the characters Windows strips from the ends of a name
const trimCutset = " ."

// PlaceholderName replaces names that are empty after trimming
const PlaceholderName = "unnamed"

// reservedNames are the Windows device names that cannot be used as a file
// or directory name, with or without an extension
var reservedNames = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {},
	"com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {},
	"lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// IsForbiddenRune reports whether r may not appear in an NTFS name component
func IsForbiddenRune(r rune) bool {
	return r < 0x20 || strings.ContainsRune(forbiddenChars, r)
}

// ContainsForbidden reports whether name holds any forbidden character
func ContainsForbidden(name string) bool {
	return strings.IndexFunc(name, IsForbiddenRune) >= 0
}

// IsReservedName reports whether name matches a reserved device name,
// case-insensitively, ignoring any extension after the first dot
func IsReservedName(name string) bool {
	stem := name
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		stem = name[:idx]
	}
	_, ok := reservedNames[strings.ToLower(stem)]
	return ok
}

// HasTrailingSpaceOrDot reports whether stripping leading/trailing spaces
// and dots would change the name
func HasTrailingSpaceOrDot(name string) bool {
	return strings.Trim(name, trimCutset) != name
}

// SplitExt splits a name into base and extension at the last dot. A dot at
// index 0 belongs to the base, so dotfiles carry no extension.
func SplitExt(name string) (base, ext string) {
	if idx := strings.LastIndexByte(name, '.'); idx > 0 {
		return name[:idx], name[idx:]
	}
	return name, ""
}

// replaceForbidden substitutes an underscore for every forbidden character,
// preserving all other characters and the name's length
func replaceForbidden(name string) string {
	return strings.Map(func(r rune) rune {
		if IsForbiddenRune(r) {
			return '_'
		}
		return r
	}, name)
}

// truncateRunes shortens s to at most n runes
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
